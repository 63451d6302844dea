package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"staff-registry/internal/model"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[uint]*model.Employee
	nextID    uint
	forcedErr error // 设置后所有操作返回该错误，模拟存储不可达
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	m := &mockEmployeeRepo{
		employees: make(map[uint]*model.Employee),
		nextID:    1,
	}
	// 预置一名员工，ID = 1
	m.employees[1] = &model.Employee{
		ID:         1,
		FullName:   "王小明",
		Email:      "wangxiaoming@test.com",
		Department: "研发部",
		HireDate:   time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	m.nextID = 2
	return m
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	emp.ID = m.nextID
	m.nextID++
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uint) (*model.Employee, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	if emp, ok := m.employees[id]; ok {
		copied := *emp
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	result := make([]model.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		result = append(result, *emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEmployeeRepo) ListByDepartment(_ context.Context, department string) ([]model.Employee, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	var result []model.Employee
	for _, emp := range m.employees {
		if emp.Department == department {
			result = append(result, *emp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id uint) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	// 不存在时静默成功，与 GORM 单语句 DELETE 行为一致
	delete(m.employees, id)
	return nil
}
