// Package api 提供商品相关的HTTP API处理器实现。
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/filter"
	"github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/service"
)

// ProductHandler 商品相关的HTTP处理器
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler 创建商品处理器实例
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// ListProducts 获取商品列表
// GET /api/v1/products?type=Optical,Sun&collection=All&material=Acetate&size=M&color=Black
// 每个筛选参数接受逗号分隔的多个值；省略参数或传 "All" 表示不限制
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	criteria := criteriaFromQuery(r, h.productService.FilterOptions())
	result := h.productService.ListProducts(criteria)
	resp.OK(w, result, reqID, "")
}

// SearchProducts 搜索商品
// GET /api/v1/products/search?q=round
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	keyword := r.URL.Query().Get("q")
	if strings.TrimSpace(keyword) == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "search keyword required", reqID, "")
		return
	}

	result := h.productService.SearchProducts(keyword)
	resp.OK(w, result, reqID, "")
}

// GetProduct 获取商品详情
// GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	// 从URL路径中提取商品ID
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	idStr := parts[4] // /api/v1/products/{id}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("get product failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get product failed", reqID, "")
		return
	}

	resp.OK(w, product, reqID, "")
}

// FilterOptions 获取筛选栏元数据
// GET /api/v1/products/filters
func (h *ProductHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	options := h.productService.FilterOptions()
	resp.OK(w, &options, reqID, "")
}

// Collection 获取分区商品列表
// GET /api/v1/collections/{name}
func (h *ProductHandler) Collection(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid collection name", reqID, "")
		return
	}

	result, err := h.productService.Collection(parts[4])
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "collection not found", reqID, "")
			return
		}

		h.logger.Error("get collection failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get collection failed", reqID, "")
		return
	}
	resp.OK(w, result, reqID, "")
}

// criteriaFromQuery 从查询参数构建筛选条件
// 每个维度的取值先对照可选值做归一化，全选或含 "All" 视为不限制
func criteriaFromQuery(r *http.Request, options domain.FilterOptions) filter.Criteria {
	query := r.URL.Query()

	optionsByAttr := map[filter.Attribute][]string{
		filter.AttrType:       options.Types,
		filter.AttrCollection: options.Collections,
		filter.AttrMaterial:   options.Materials,
		filter.AttrSize:       options.Sizes,
		filter.AttrColor:      options.Colors,
	}

	criteria := filter.None()
	for _, attr := range filter.Attributes {
		raw := query.Get(string(attr))
		if raw == "" {
			continue
		}

		var selected []string
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				selected = append(selected, v)
			}
		}
		criteria[attr] = filter.NewCriterion(selected, optionsByAttr[attr])
	}
	return criteria
}
