package web

import (
	"net/http"

	"github.com/SukhanRumanov/prac3/internal/department"
	"github.com/SukhanRumanov/prac3/internal/employee"
	"github.com/SukhanRumanov/prac3/internal/position"
	"github.com/SukhanRumanov/prac3/internal/shared/request"
	"github.com/SukhanRumanov/prac3/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	editEmployeesPath   = "/web/edit/employees"
	editDepartmentsPath = "/web/edit/departments"
	editPositionsPath   = "/web/edit/positions"
)

func (h *Handler) EditIndex(c *gin.Context) {
	h.render(c, "edit_main.html", "Edit data", nil)
}

type editEmployeesData struct {
	Blank     employee.EmployeeResponse
	Employees []employee.EmployeeResponse
	Lookups   lookups
}

func (h *Handler) EditEmployees(c *gin.Context) {
	ctx := c.Request.Context()

	page, err := h.svc.Employees.List(ctx, employee.ListEmployeesQuery{Limit: request.MaxLimit})
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}
	l, err := h.loadLookups(ctx)
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}

	items, _ := page.Items.([]employee.EmployeeResponse)
	h.render(c, "edit_employees.html", "Edit employees", editEmployeesData{
		Blank:     employee.EmployeeResponse{StatusID: status.ActiveID, Rate: decimal.NewFromInt(1)},
		Employees: items,
		Lookups:   l,
	})
}

func (h *Handler) AddEmployee(c *gin.Context) {
	var form employeeForm
	if err := request.BindForm(c, &form); err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	req, err := form.create()
	if err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	if _, err := h.svc.Employees.Create(c.Request.Context(), req); err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editEmployeesPath)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, err := request.ParseID(c, "id", "employee")
	if err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	var form employeeForm
	if err := request.BindForm(c, &form); err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	req, err := form.update()
	if err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	if _, err := h.svc.Employees.Update(c.Request.Context(), id, req); err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editEmployeesPath)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, err := request.ParseID(c, "id", "employee")
	if err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	if err := h.svc.Employees.Delete(c.Request.Context(), id); err != nil {
		h.redirectError(c, editEmployeesPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editEmployeesPath)
}

func (h *Handler) EditDepartments(c *gin.Context) {
	page, err := h.svc.Departments.List(c.Request.Context(), department.ListDepartmentsQuery{Limit: request.MaxLimit})
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}
	h.render(c, "edit_departments.html", "Edit departments", page.Items)
}

func (h *Handler) AddDepartment(c *gin.Context) {
	var form departmentForm
	if err := request.BindForm(c, &form); err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	req, err := form.create()
	if err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	if _, err := h.svc.Departments.Create(c.Request.Context(), req); err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editDepartmentsPath)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, err := request.ParseID(c, "id", "department")
	if err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	var form departmentForm
	if err := request.BindForm(c, &form); err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	req, err := form.update()
	if err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	if _, err := h.svc.Departments.Update(c.Request.Context(), id, req); err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editDepartmentsPath)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, err := request.ParseID(c, "id", "department")
	if err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	if err := h.svc.Departments.Delete(c.Request.Context(), id); err != nil {
		h.redirectError(c, editDepartmentsPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editDepartmentsPath)
}

func (h *Handler) EditPositions(c *gin.Context) {
	page, err := h.svc.Positions.List(c.Request.Context(), position.ListPositionsQuery{Limit: request.MaxLimit})
	if err != nil {
		h.redirectError(c, homePath, err)
		return
	}
	h.render(c, "edit_positions.html", "Edit positions", page.Items)
}

func (h *Handler) AddPosition(c *gin.Context) {
	var form positionForm
	if err := request.BindForm(c, &form); err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	req, err := form.create()
	if err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	if _, err := h.svc.Positions.Create(c.Request.Context(), req); err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editPositionsPath)
}

func (h *Handler) UpdatePosition(c *gin.Context) {
	id, err := request.ParseID(c, "id", "position")
	if err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	var form positionForm
	if err := request.BindForm(c, &form); err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	req, err := form.update()
	if err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	if _, err := h.svc.Positions.Update(c.Request.Context(), id, req); err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editPositionsPath)
}

func (h *Handler) DeletePosition(c *gin.Context) {
	id, err := request.ParseID(c, "id", "position")
	if err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	if err := h.svc.Positions.Delete(c.Request.Context(), id); err != nil {
		h.redirectError(c, editPositionsPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, editPositionsPath)
}
