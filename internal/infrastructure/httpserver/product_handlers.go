package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	defaultListLimit = 20
	welcomeMessage   = "Welcome to Products API. Your favourite Products API for your store!"
)

func (s *Server) welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.productSvc.RetrieveProduct(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return s.productError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var req product.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, created, err := s.productSvc.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return s.productError(c, err)
	}
	if created {
		return c.JSON(http.StatusCreated, p)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) listProducts(c echo.Context) error {
	limit := s.config.ListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		if n < limit {
			limit = n
		}
	}

	products, err := s.productSvc.ListProducts(c.Request().Context(), limit)
	if err != nil {
		return s.productError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// productError maps service errors onto HTTP responses. Anything unrecognised
// is a 500 with a generic message; the cause is logged.
func (s *Server) productError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, product.ErrInvalidIdentifier):
		return echo.NewHTTPError(http.StatusBadRequest, product.ErrInvalidIdentifier.Error())
	case errors.Is(err, product.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, product.ErrNotFound.Error())
	case errors.Is(err, product.ErrPostInsertConsistency):
		return echo.NewHTTPError(http.StatusNotFound, product.ErrPostInsertConsistency.Error())
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"method":     c.Request().Method,
			"path":       c.Path(),
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}).WithError(err).Error("product request failed")
	}
	if errors.Is(err, product.ErrInsertNotAcknowledged) {
		return echo.NewHTTPError(http.StatusInternalServerError, product.ErrInsertNotAcknowledged.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
