package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// CreateOrder 下单
// @Summary 创建订单
// @Tags 商店
// @Accept json
// @Produce json
// @Param request body service.OrderForm true "订单表单"
// @Success 201 {object} response.Response{data=model.Order}
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/shop/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var form service.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Create(c.Request.Context(), form)
	if err != nil {
		fail(c, err, form)
		return
	}
	response.Created(c, order)
}

// ListOrders 最近订单
// @Summary 订单列表
// @Tags 商店
// @Produce json
// @Param limit query int false "数量，1-100" default(20)
// @Success 200 {object} response.Response{data=service.OrderList}
// @Router /api/v1/shop/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := h.orders.List(c.Request.Context(), limit)
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, list)
}

// GetOrder 查询订单
// @Summary 查询订单
// @Tags 商店
// @Produce json
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 404 {object} response.Response
// @Router /api/v1/shop/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.NotFound(c, service.ErrOrderNotFound.Error())
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, order)
}

// MarkOrderPaid 标记已支付
// @Summary 标记订单已支付
// @Tags 商店
// @Produce json
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 404 {object} response.Response
// @Router /api/v1/shop/orders/{id}/paid [post]
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.NotFound(c, service.ErrOrderNotFound.Error())
		return
	}
	order, err := h.orders.MarkPaid(c.Request.Context(), id)
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, order)
}
