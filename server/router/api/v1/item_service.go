package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/alemeno/ai/metrics"
	"github.com/hrygo/alemeno/store"
)

type ItemService struct {
	Store   *store.Store
	Metrics *metrics.PrometheusExporter
}

type createItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *ItemService) ListItems(c echo.Context) error {
	list, err := s.Store.ListItems(c.Request().Context(), nil)
	if err != nil {
		s.record("list", "error")
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
	}
	s.record("list", "success")

	items := make([]*Item, 0, len(list))
	for _, item := range list {
		items = append(items, convertItemFromStore(item))
	}
	return c.JSON(http.StatusOK, items)
}

func (s *ItemService) CreateItem(c echo.Context) error {
	request := &createItemRequest{}
	if err := c.Bind(request); err != nil {
		s.record("create", "invalid")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}

	item, err := s.Store.CreateItem(c.Request().Context(), &store.CreateItem{
		Name:        request.Name,
		Description: request.Description,
	})
	if err != nil {
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			s.record("create", "invalid")
			return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
		}
		s.record("create", "error")
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
	}
	s.record("create", "success")
	return c.JSON(http.StatusCreated, convertItemFromStore(item))
}

func (s *ItemService) GetItem(c echo.Context) error {
	id, ok := parseItemID(c)
	if !ok {
		s.record("get", "not_found")
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := s.Store.GetItem(c.Request().Context(), id)
	if err != nil {
		return s.storeError("get", err)
	}
	s.record("get", "success")
	return c.JSON(http.StatusOK, convertItemFromStore(item))
}

func (s *ItemService) DeleteItem(c echo.Context) error {
	id, ok := parseItemID(c)
	if !ok {
		s.record("delete", "not_found")
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	deleted, err := s.Store.DeleteItem(c.Request().Context(), id)
	if err != nil {
		return s.storeError("delete", err)
	}
	s.record("delete", "success")
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

// parseItemID reads the :id path parameter. Anything that is not a base-10
// integer addresses no item.
func parseItemID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *ItemService) storeError(operation string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		s.record(operation, "not_found")
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	s.record(operation, "error")
	return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
}

func (s *ItemService) record(operation, status string) {
	if s.Metrics != nil {
		s.Metrics.RecordItemOperation(operation, status)
	}
}
