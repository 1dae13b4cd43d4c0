package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/validation"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// OrderService 下单表单校验与订单读写
type OrderService struct {
	repo     repository.OrderRepository
	validate *validation.Validator
	country  string
}

// NewOrderService country 为邮编校验使用的国家代码，如 NL
func NewOrderService(repo repository.OrderRepository, country string) *OrderService {
	return &OrderService{repo: repo, validate: validation.New(), country: strings.ToUpper(country)}
}

// Create 校验并保存订单
func (s *OrderService) Create(ctx context.Context, form OrderForm) (*model.Order, error) {
	form.clean()
	form.PostalCode = validation.NormalizePostalCode(s.country, form.PostalCode)

	fields, err := s.validate.Struct(form)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = validation.Errors{}
	}
	if _, bad := fields["postal_code"]; !bad && validation.SupportedCountry(s.country) {
		pcErrs, err := s.validate.Var("postal_code", form.PostalCode, "postalcode="+s.country)
		if err != nil {
			return nil, err
		}
		for k, v := range pcErrs {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	order := &model.Order{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Address:    form.Address,
		PostalCode: form.PostalCode,
		City:       form.City,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	logger.Info("order created", zap.Uint("order_id", order.ID), zap.String("city", order.City))
	return order, nil
}

// Get 按 ID 查询订单
func (s *OrderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return order, nil
}

// MarkPaid 标记订单已支付
func (s *OrderService) MarkPaid(ctx context.Context, id uint) (*model.Order, error) {
	if err := s.repo.MarkPaid(ctx, id); err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return s.Get(ctx, id)
}

// OrderList 最近订单与订单总数
type OrderList struct {
	Orders []*model.Order `json:"orders"`
	Total  int64          `json:"total"`
}

// List 按创建时间倒序列出最近 limit 个订单，limit 限制在 1..100
func (s *OrderService) List(ctx context.Context, limit int) (*OrderList, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	orders, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	return &OrderList{Orders: orders, Total: total}, nil
}
