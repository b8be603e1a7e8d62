// Package response writes the API's uniform JSON envelope:
// {success, message, data?, errors?}.
package response

import "github.com/gin-gonic/gin"

// Success writes a success envelope. Data is omitted when nil.
func Success(c *gin.Context, status int, message string, data interface{}) {
	payload := gin.H{"success": true, "message": message}
	if data != nil {
		payload["data"] = data
	}
	c.JSON(status, payload)
}

// Error writes a failure envelope with a message only.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// ValidationFailed writes a 422 envelope carrying a field → message map.
func ValidationFailed(c *gin.Context, errs map[string]string) {
	c.JSON(422, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}
