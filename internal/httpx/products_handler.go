package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/durwesh/perfume-shop/internal/shop"
)

type ProductsHandler struct {
	Store ProductStore
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Post("/products", h.create)
	r.Get("/products/{id}", h.get)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
	r.Patch("/products/{id}/toggle-stock", h.toggleStock)
}

type productsResponse struct {
	Success  bool           `json:"success"`
	Products []shop.Product `json:"products"`
	Count    int            `json:"count"`
}

type productResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Product *shop.Product `json:"product"`
}

type createProductReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	InStock     *bool   `json:"in_stock"`
}

type updateProductReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"in_stock"`
}

// parseID only checks parseability; out-of-range ids like 0 fall through to
// the store and come back as 404, not 400.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}

func validImageURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}

func reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	products, err := h.Store.ListProducts(ctx)
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	if products == nil {
		products = []shop.Product{}
	}
	writeJSON(w, http.StatusOK, productsResponse{Success: true, Products: products, Count: len(products)})
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		fail(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.GetProduct(ctx, id)
	if errors.Is(err, shop.ErrNotFound) {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	writeJSON(w, http.StatusOK, productResponse{Success: true, Product: p})
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	req.Category = strings.TrimSpace(req.Category)

	if req.Name == "" || req.Description == "" || req.ImageURL == "" || req.Category == "" || req.Price == 0 {
		fail(w, http.StatusBadRequest, "missing required fields: name, description, price, image_url, category")
		return
	}
	if req.Price <= 0 {
		fail(w, http.StatusBadRequest, "price must be a positive number")
		return
	}
	if !validImageURL(req.ImageURL) {
		fail(w, http.StatusBadRequest, "invalid image URL format")
		return
	}

	np := shop.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		InStock:     true,
	}
	if req.InStock != nil {
		np.InStock = *req.InStock
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.CreateProduct(ctx, np)
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	writeJSON(w, http.StatusCreated, productResponse{Success: true, Message: "Product added successfully", Product: p})
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		fail(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	var req updateProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		fail(w, http.StatusBadRequest, "price must be a positive number")
		return
	}
	if req.ImageURL != nil && !validImageURL(*req.ImageURL) {
		fail(w, http.StatusBadRequest, "invalid image URL format")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.UpdateProduct(ctx, id, shop.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		InStock:     req.InStock,
	})
	if errors.Is(err, shop.ErrNotFound) {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, productResponse{Success: true, Message: "Product updated successfully", Product: p})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		fail(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()

	deleted, err := h.Store.DeleteProduct(ctx, id)
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	if !deleted {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product deleted successfully"})
}

func (h *ProductsHandler) toggleStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		fail(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.ToggleProductStock(ctx, id)
	if errors.Is(err, shop.ErrNotFound) {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to toggle stock status")
		return
	}
	msg := "Product marked as out of stock"
	if p.InStock {
		msg = "Product marked as in stock"
	}
	writeJSON(w, http.StatusOK, productResponse{Success: true, Message: msg, Product: p})
}
