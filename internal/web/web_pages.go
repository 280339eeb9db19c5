package web

import (
	"strings"

	"github.com/SukhanRumanov/prac3/internal/department"
	"github.com/SukhanRumanov/prac3/internal/employee"
	"github.com/SukhanRumanov/prac3/internal/position"
	"github.com/SukhanRumanov/prac3/internal/shared/request"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type indexData struct {
	Employees   int64
	Departments int64
	Positions   int64
}

func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	var data indexData

	if p, err := h.svc.Employees.List(ctx, employee.ListEmployeesQuery{Limit: 1}); err == nil {
		data.Employees = p.Total
	}
	if p, err := h.svc.Departments.List(ctx, department.ListDepartmentsQuery{Limit: 1}); err == nil {
		data.Departments = p.Total
	}
	if p, err := h.svc.Positions.List(ctx, position.ListPositionsQuery{Limit: 1}); err == nil {
		data.Positions = p.Total
	}

	h.render(c, "index.html", "Employee management", data)
}

type employeesData struct {
	Query     employee.ListEmployeesQuery
	Page      response.Page
	Employees []employee.EmployeeResponse
	Lookups   lookups
}

// dropEmptyQuery removes blank filter inputs so "any" selections bind as absent.
func dropEmptyQuery(c *gin.Context) {
	values := c.Request.URL.Query()
	for k, v := range values {
		if len(v) == 0 || strings.TrimSpace(v[0]) == "" {
			values.Del(k)
		}
	}
	c.Request.URL.RawQuery = values.Encode()
}

func (h *Handler) Employees(c *gin.Context) {
	dropEmptyQuery(c)

	var q employee.ListEmployeesQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.redirectError(c, "/web/employees", err)
		return
	}

	page, err := h.svc.Employees.List(c.Request.Context(), q)
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}

	l, err := h.loadLookups(c.Request.Context())
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}

	items, _ := page.Items.([]employee.EmployeeResponse)
	h.render(c, "employees.html", "Employees", employeesData{
		Query:     q,
		Page:      page,
		Employees: items,
		Lookups:   l,
	})
}

func (h *Handler) Departments(c *gin.Context) {
	page, err := h.svc.Departments.List(c.Request.Context(), department.ListDepartmentsQuery{Limit: request.MaxLimit})
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}
	h.render(c, "departments.html", "Departments", page.Items)
}

func (h *Handler) Positions(c *gin.Context) {
	page, err := h.svc.Positions.List(c.Request.Context(), position.ListPositionsQuery{Limit: request.MaxLimit})
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}
	h.render(c, "positions.html", "Positions", page.Items)
}
