package web

import (
	"strconv"
	"strings"

	"github.com/SukhanRumanov/prac3/internal/department"
	"github.com/SukhanRumanov/prac3/internal/employee"
	"github.com/SukhanRumanov/prac3/internal/position"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/patch"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

// HTML forms always post every input, so a blank field means "clear" for
// nullable columns rather than "leave untouched".

type departmentForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

func (f departmentForm) create() (department.CreateDepartmentRequest, error) {
	req := department.CreateDepartmentRequest{
		Name:        f.Name,
		Description: blankToNil(f.Description),
	}
	return req, validate(req)
}

func (f departmentForm) update() (department.UpdateDepartmentRequest, error) {
	name := f.Name
	req := department.UpdateDepartmentRequest{
		Name:        &name,
		Description: nullable(f.Description),
	}
	return req, validate(req)
}

type positionForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	BaseSalary  string `form:"base_salary"`
}

func (f positionForm) create() (position.CreatePositionRequest, error) {
	salary, err := parseDecimal(f.BaseSalary, "Base Salary")
	if err != nil {
		return position.CreatePositionRequest{}, err
	}
	req := position.CreatePositionRequest{
		Title:       f.Title,
		Description: blankToNil(f.Description),
		BaseSalary:  salary,
	}
	return req, validate(req)
}

func (f positionForm) update() (position.UpdatePositionRequest, error) {
	salary, err := parseDecimal(f.BaseSalary, "Base Salary")
	if err != nil {
		return position.UpdatePositionRequest{}, err
	}
	title := f.Title
	req := position.UpdatePositionRequest{
		Title:       &title,
		Description: nullable(f.Description),
		BaseSalary:  salary,
	}
	return req, validate(req)
}

type employeeForm struct {
	FirstName    string   `form:"first_name"`
	LastName     string   `form:"last_name"`
	MiddleName   string   `form:"middle_name"`
	BirthDate    string   `form:"birth_date"`
	HireDate     string   `form:"hire_date"`
	Email        string   `form:"email"`
	Phone        string   `form:"phone"`
	Address      string   `form:"address"`
	Salary       string   `form:"salary"`
	Rate         string   `form:"rate"`
	DepartmentID string   `form:"department_id"`
	PositionID   string   `form:"position_id"`
	StatusID     string   `form:"status_id"`
	SkillIDs     []string `form:"skill_ids"`
}

type employeeValues struct {
	salary, rate                     *decimal.Decimal
	departmentID, positionID, status *uint
	skillIDs                         []uint
}

func (f employeeForm) parse() (employeeValues, error) {
	var (
		v   employeeValues
		err error
	)
	if v.salary, err = parseDecimal(f.Salary, "Salary"); err != nil {
		return v, err
	}
	if v.rate, err = parseDecimal(f.Rate, "Rate"); err != nil {
		return v, err
	}
	if v.departmentID, err = parseID(f.DepartmentID, "Department Id"); err != nil {
		return v, err
	}
	if v.positionID, err = parseID(f.PositionID, "Position Id"); err != nil {
		return v, err
	}
	if v.status, err = parseID(f.StatusID, "Status Id"); err != nil {
		return v, err
	}
	v.skillIDs = []uint{}
	for _, raw := range f.SkillIDs {
		id, err := parseID(raw, "Skill Ids")
		if err != nil {
			return v, err
		}
		if id != nil {
			v.skillIDs = append(v.skillIDs, *id)
		}
	}
	return v, nil
}

func (f employeeForm) create() (employee.CreateEmployeeRequest, error) {
	v, err := f.parse()
	if err != nil {
		return employee.CreateEmployeeRequest{}, err
	}
	req := employee.CreateEmployeeRequest{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		MiddleName:   blankToNil(f.MiddleName),
		BirthDate:    strings.TrimSpace(f.BirthDate),
		HireDate:     strings.TrimSpace(f.HireDate),
		Email:        blankToNil(f.Email),
		Phone:        blankToNil(f.Phone),
		Address:      blankToNil(f.Address),
		Salary:       v.salary,
		Rate:         v.rate,
		DepartmentID: v.departmentID,
		PositionID:   v.positionID,
		StatusID:     v.status,
		SkillIDs:     v.skillIDs,
	}
	return req, validate(req)
}

func (f employeeForm) update() (employee.UpdateEmployeeRequest, error) {
	v, err := f.parse()
	if err != nil {
		return employee.UpdateEmployeeRequest{}, err
	}
	first, last := f.FirstName, f.LastName
	birth, hire := strings.TrimSpace(f.BirthDate), strings.TrimSpace(f.HireDate)
	req := employee.UpdateEmployeeRequest{
		FirstName:  &first,
		LastName:   &last,
		MiddleName: nullable(f.MiddleName),
		BirthDate:  &birth,
		HireDate:   &hire,
		Email:      nullable(f.Email),
		Phone:      nullable(f.Phone),
		Address:    nullable(f.Address),
		Salary:     v.salary,
		Rate:       v.rate,
		StatusID:   v.status,
		SkillIDs:   &v.skillIDs,
	}
	req.DepartmentID = patch.Null[uint]()
	if v.departmentID != nil {
		req.DepartmentID = patch.Some(*v.departmentID)
	}
	req.PositionID = patch.Null[uint]()
	if v.positionID != nil {
		req.PositionID = patch.Some(*v.positionID)
	}
	return req, validate(req)
}

func validate(req any) error {
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nullable(s string) patch.Field[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return patch.Null[string]()
	}
	return patch.Some(s)
}

// parseDecimal returns nil for a blank input and lets the service decide
// whether the value is required.
func parseDecimal(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &d, nil
}

func parseID(raw, field string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, apperror.InvalidField(field)
	}
	id := uint(n)
	return &id, nil
}
