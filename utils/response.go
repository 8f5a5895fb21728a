package utils

import "github.com/gin-gonic/gin"

// APIResponse is the envelope of every /api response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, APIResponse{Success: true, Data: data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{Success: false, Error: message})
}

// Attachment sends data as a file download.
func Attachment(c *gin.Context, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(200, contentType, data)
}
