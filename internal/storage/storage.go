package storage

import "mime/multipart"

// FileStorage 是文件存储后端的抽象，本地磁盘和 S3 都实现它，
// 启动时按 STORAGE_DRIVER 选择
type FileStorage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
