package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staff-registry/internal/dto"
	"staff-registry/internal/model"
	"staff-registry/internal/repository"
	"staff-registry/pkg/redis"
)

// ── 员工模块业务错误 ──

var ErrEmployeeNotFound = errors.New("员工不存在")

// EmployeeService 员工业务接口
//
// 当前为 Handler 与 Repository 之间的直通层，不附加业务规则，
// 保留该接缝以便后续注入校验、审批等逻辑而不改动调用方。
// 仅承担两项边界职责：缺失记录的哨兵错误转换、入职时间的默认值填充。
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateEmployeeRequest) error
	Delete(ctx context.Context, id uint) error
}

type employeeService struct {
	repo     *repository.Repository
	rdb      *redis.Client // 可为 nil；所有缓存故障均回源数据库
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, rdb: rdb, cacheTTL: cacheTTL, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp := &model.Employee{
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}

	// 未指定入职时间时默认为当前 UTC 时间
	if req.HireDate != nil {
		emp.HireDate = req.HireDate.UTC()
	} else {
		emp.HireDate = time.Now().UTC()
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(emp), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id uint) (*dto.EmployeeResponse, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	s.cacheSet(ctx, resp)
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	var emps []model.Employee
	var err error

	if req != nil && req.Department != "" {
		emps, err = s.repo.Employee.ListByDepartment(ctx, req.Department)
	} else {
		emps, err = s.repo.Employee.List(ctx)
	}
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		result = append(result, *toEmployeeResponse(&emps[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 以 ID 为匹配键整体替换可变字段。
// 目标记录不存在时返回 ErrEmployeeNotFound，而非静默忽略。
func (s *employeeService) Update(ctx context.Context, id uint, req *dto.UpdateEmployeeRequest) error {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.Department = req.Department
	if req.HireDate != nil {
		emp.HireDate = req.HireDate.UTC()
	}

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.cacheInvalidate(ctx, id)
	return nil
}

// ────────────────────── Delete ──────────────────────

// Delete 幂等删除：目标记录不存在时同样成功返回
func (s *employeeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Employee.Delete(ctx, id); err != nil {
		s.logger.Error("删除员工失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.cacheInvalidate(ctx, id)
	return nil
}

// ── 内部辅助方法 ──

func toEmployeeResponse(emp *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         emp.ID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
		HireDate:   emp.HireDate,
	}
}

// cacheGet 读取员工快照缓存；未命中或任何故障均返回 nil 回源
func (s *employeeService) cacheGet(ctx context.Context, id uint) *dto.EmployeeResponse {
	if s.rdb == nil {
		return nil
	}
	payload, err := s.rdb.GetEmployee(ctx, id)
	if err != nil {
		s.logger.Warn("读取员工缓存失败，回源数据库", zap.Uint("id", id), zap.Error(err))
		return nil
	}
	if payload == nil {
		return nil
	}
	var resp dto.EmployeeResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		s.logger.Warn("员工缓存内容无法解析，回源数据库", zap.Uint("id", id), zap.Error(err))
		return nil
	}
	return &resp
}

func (s *employeeService) cacheSet(ctx context.Context, resp *dto.EmployeeResponse) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.SetEmployee(ctx, resp.ID, payload, s.cacheTTL); err != nil {
		s.logger.Warn("写入员工缓存失败", zap.Uint("id", resp.ID), zap.Error(err))
	}
}

func (s *employeeService) cacheInvalidate(ctx context.Context, id uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateEmployee(ctx, id); err != nil {
		s.logger.Warn("失效员工缓存失败", zap.Uint("id", id), zap.Error(err))
	}
}
