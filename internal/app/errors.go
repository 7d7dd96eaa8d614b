package app

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrProjectNotFound      = errors.New("project not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrGeneratedDocNotFound = errors.New("generated document not found")
	ErrChatMessageNotFound  = errors.New("chat message not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds size limit")
	ErrIngestEnqueue        = errors.New("ingest enqueue failed")
)
