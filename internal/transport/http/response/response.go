package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                   = 0
	CodeBadRequest           = 40000
	CodeUnsupportedFileType  = 40001
	CodeUnsupportedDocType   = 40002
	CodeFileTooLarge         = 40003
	CodeUnsupportedFormat    = 40004
	CodeProjectNotFound      = 40401
	CodeDocumentNotFound     = 40402
	CodeGeneratedNotFound    = 40403
	CodeChatMessageNotFound  = 40404
	CodeInternalServer       = 50000
	CodeAINotConfigured      = 50301
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
