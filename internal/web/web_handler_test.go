package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SukhanRumanov/prac3/internal/auth"
	autherrors "github.com/SukhanRumanov/prac3/internal/auth/errors"
	"github.com/SukhanRumanov/prac3/internal/auth/gate"
	mock_auth "github.com/SukhanRumanov/prac3/internal/auth/mock"
	"github.com/SukhanRumanov/prac3/internal/department"
	departmenterrors "github.com/SukhanRumanov/prac3/internal/department/errors"
	mock_department "github.com/SukhanRumanov/prac3/internal/department/mock"
	"github.com/SukhanRumanov/prac3/internal/employee"
	mock_employee "github.com/SukhanRumanov/prac3/internal/employee/mock"
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/position"
	mock_position "github.com/SukhanRumanov/prac3/internal/position/mock"
	"github.com/SukhanRumanov/prac3/internal/rbac"
	"github.com/SukhanRumanov/prac3/internal/rbac/infra"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/patch"
	"github.com/SukhanRumanov/prac3/internal/shared/response"
	"github.com/SukhanRumanov/prac3/internal/skill"
	mock_skill "github.com/SukhanRumanov/prac3/internal/skill/mock"
	"github.com/SukhanRumanov/prac3/internal/status"
	mock_status "github.com/SukhanRumanov/prac3/internal/status/mock"
	"github.com/SukhanRumanov/prac3/internal/user"
	"github.com/SukhanRumanov/prac3/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	admin   = gate.Identity{Kind: gate.Administrator, UserID: 1, Username: "admin"}
	regular = gate.Identity{Kind: gate.Authenticated, UserID: 2, Username: "alice"}
)

type mocks struct {
	auth        *mock_auth.MockService
	departments *mock_department.MockService
	positions   *mock_position.MockService
	employees   *mock_employee.MockService
	statuses    *mock_status.MockService
	skills      *mock_skill.MockService
}

func setup(t *testing.T, identity *gate.Identity, loginRate string) (*gin.Engine, mocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	m := mocks{
		auth:        mock_auth.NewMockService(ctrl),
		departments: mock_department.NewMockService(ctrl),
		positions:   mock_position.NewMockService(ctrl),
		employees:   mock_employee.NewMockService(ctrl),
		statuses:    mock_status.NewMockService(ctrl),
		skills:      mock_skill.NewMockService(ctrl),
	}

	tmpl, err := web.Templates()
	require.NoError(t, err)

	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)

	if loginRate == "" {
		loginRate = "100-M"
	}
	limiter, err := middleware.NewLoginLimiter(loginRate, nil)
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	if identity != nil {
		r.Use(func(c *gin.Context) {
			c.Set("identity", *identity)
			c.Next()
		})
	}

	h := web.NewHandler(web.Services{
		Auth:        m.auth,
		Departments: m.departments,
		Positions:   m.positions,
		Employees:   m.employees,
		Statuses:    m.statuses,
		Skills:      m.skills,
	}, auth.CookieConfig{}, zap.NewNop())
	web.RegisterRoutes(r, h, rbac.NewService(enforcer, zap.NewNop()), limiter)
	return r, m
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func post(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectLookups(m mocks) {
	m.departments.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(response.Page{Items: []department.DepartmentResponse{{ID: 1, Name: "IT"}}}, nil)
	m.positions.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(response.Page{Items: []position.PositionResponse{{ID: 2, Title: "Engineer"}}}, nil)
	m.statuses.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(response.Page{Items: []status.StatusResponse{{ID: 1, Name: "Active"}}}, nil)
	m.skills.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(response.Page{Items: []skill.SkillResponse{{ID: 3, Name: "Go"}}}, nil)
}

func TestWeb_AnonymousIsSentToLogin(t *testing.T) {
	r, _ := setup(t, nil, "")

	for _, path := range []string{"/web/", "/web/employees", "/web/edit/departments"} {
		w := get(r, path)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/web/login", w.Header().Get("Location"), path)
	}
}

func TestWeb_LoginPage(t *testing.T) {
	t.Run("renders form", func(t *testing.T) {
		r, _ := setup(t, nil, "")
		w := get(r, "/web/login?error=Invalid+credentials")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/web/login"`)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("signed in user goes home", func(t *testing.T) {
		r, _ := setup(t, &regular, "")
		w := get(r, "/web/login")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/", w.Header().Get("Location"))
	})
}

func TestWeb_Login(t *testing.T) {
	t.Run("success sets cookie", func(t *testing.T) {
		r, m := setup(t, nil, "")
		m.auth.EXPECT().Login(gomock.Any(), auth.LoginRequest{Username: "admin", Password: "admin123"}).
			Return(auth.TokenResponse{
				AccessToken: "signed",
				ExpiresAt:   time.Now().Add(time.Hour),
				User:        user.UserResponse{ID: 1, Username: "admin"},
			}, nil)

		w := post(r, "/web/login", url.Values{"username": {"admin"}, "password": {"admin123"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/", w.Header().Get("Location"))

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == gate.CookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.Equal(t, "signed", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("bad credentials", func(t *testing.T) {
		r, m := setup(t, nil, "")
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(auth.TokenResponse{}, autherrors.ErrInvalidCredentials)

		w := post(r, "/web/login", url.Values{"username": {"admin"}, "password": {"nope"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/login?error=Invalid+credentials", w.Header().Get("Location"))
	})

	t.Run("missing password never reaches the service", func(t *testing.T) {
		r, _ := setup(t, nil, "")
		w := post(r, "/web/login", url.Values{"username": {"admin"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/login?error=Password+is+required", w.Header().Get("Location"))
	})

	t.Run("throttled", func(t *testing.T) {
		r, m := setup(t, nil, "1-M")
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(auth.TokenResponse{}, autherrors.ErrInvalidCredentials)

		post(r, "/web/login", url.Values{"username": {"admin"}, "password": {"nope"}})
		w := post(r, "/web/login", url.Values{"username": {"admin"}, "password": {"nope"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/login?error=Too+many+requests", w.Header().Get("Location"))
	})
}

func TestWeb_Logout(t *testing.T) {
	r, _ := setup(t, &regular, "")
	w := post(r, "/web/logout", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/web/login", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), gate.CookieName+"=;")
}

func TestWeb_Index(t *testing.T) {
	r, m := setup(t, &regular, "")
	m.employees.EXPECT().List(gomock.Any(), gomock.Any()).Return(response.Page{Total: 7}, nil)
	m.departments.EXPECT().List(gomock.Any(), gomock.Any()).Return(response.Page{Total: 2}, nil)
	m.positions.EXPECT().List(gomock.Any(), gomock.Any()).Return(response.Page{Total: 3}, nil)

	w := get(r, "/web/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), "Employees</a>: 7")
	assert.NotContains(t, w.Body.String(), `href="/web/edit"`)
}

func TestWeb_Employees(t *testing.T) {
	t.Run("blank filters are ignored", func(t *testing.T) {
		r, m := setup(t, &regular, "")
		m.employees.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q employee.ListEmployeesQuery) (response.Page, error) {
				assert.Nil(t, q.DepartmentID)
				assert.Nil(t, q.SalaryFrom)
				assert.Equal(t, "ivan", q.Search)
				assert.Equal(t, 100, q.Limit)
				return response.Page{Total: 1, Items: []employee.EmployeeResponse{{
					ID: 1, FullName: "Ivanov Ivan", HireDate: "2020-01-15",
					Salary: decimal.NewFromInt(50000), Skills: []string{"Go", "SQL"},
				}}}, nil
			})
		expectLookups(m)

		w := get(r, "/web/employees?search=ivan&department_id=&salary_from=&hire_date_from=")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Ivanov Ivan")
		assert.Contains(t, body, "50000.00")
		assert.Contains(t, body, "Go, SQL")
	})

	t.Run("selected filter is bound", func(t *testing.T) {
		r, m := setup(t, &regular, "")
		m.employees.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q employee.ListEmployeesQuery) (response.Page, error) {
				require.NotNil(t, q.DepartmentID)
				assert.Equal(t, uint(1), *q.DepartmentID)
				return response.Page{Items: []employee.EmployeeResponse{}}, nil
			})
		expectLookups(m)

		w := get(r, "/web/employees?department_id=1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<option value="1" selected>IT</option>`)
		assert.Contains(t, w.Body.String(), "No employees found")
	})
}

func TestWeb_EditRequiresAdministrator(t *testing.T) {
	r, _ := setup(t, &regular, "")

	w := post(r, "/web/edit/departments/add", url.Values{"name": {"HR"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/web/?error=Admin+access+required", w.Header().Get("Location"))
}

func TestWeb_EditDepartments(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		desc := "People"
		m.departments.EXPECT().List(gomock.Any(), gomock.Any()).Return(response.Page{
			Items: []department.DepartmentResponse{{ID: 4, Name: "HR", Description: &desc, EmployeeCount: 2}},
		}, nil)

		w := get(r, "/web/edit/departments")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/web/edit/departments/update/4"`)
		assert.Contains(t, w.Body.String(), `value="People"`)
	})

	t.Run("add with blank description", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.departments.EXPECT().Create(gomock.Any(), department.CreateDepartmentRequest{Name: "HR"}).
			Return(department.DepartmentResponse{ID: 5, Name: "HR"}, nil)

		w := post(r, "/web/edit/departments/add", url.Values{"name": {"HR"}, "description": {"  "}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/edit/departments", w.Header().Get("Location"))
	})

	t.Run("update clears description", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.departments.EXPECT().Update(gomock.Any(), uint(4), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
				require.NotNil(t, req.Name)
				assert.Equal(t, "Human resources", *req.Name)
				assert.Equal(t, patch.Null[string](), req.Description)
				return department.DepartmentResponse{ID: 4}, nil
			})

		w := post(r, "/web/edit/departments/update/4", url.Values{"name": {"Human resources"}, "description": {""}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/edit/departments", w.Header().Get("Location"))
	})

	t.Run("delete in use", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.departments.EXPECT().Delete(gomock.Any(), uint(4)).Return(departmenterrors.ErrDepartmentInUse)

		w := post(r, "/web/edit/departments/delete/4", nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/edit/departments?error="+url.QueryEscape(departmenterrors.ErrDepartmentInUse.Message),
			w.Header().Get("Location"))
	})

	t.Run("bad id", func(t *testing.T) {
		r, _ := setup(t, &admin, "")
		w := post(r, "/web/edit/departments/delete/abc", nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/web/edit/departments?error="))
	})
}

func TestWeb_EditPositions(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.positions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
				assert.Equal(t, "Engineer", req.Title)
				require.NotNil(t, req.BaseSalary)
				assert.Equal(t, "1500.5", req.BaseSalary.String())
				return position.PositionResponse{ID: 1}, nil
			})

		w := post(r, "/web/edit/positions/add", url.Values{"title": {"Engineer"}, "base_salary": {"1500.50"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/edit/positions", w.Header().Get("Location"))
	})

	t.Run("unparsable salary", func(t *testing.T) {
		r, _ := setup(t, &admin, "")
		w := post(r, "/web/edit/positions/add", url.Values{"title": {"Engineer"}, "base_salary": {"lots"}})

		assert.Equal(t, "/web/edit/positions?error=Base+Salary+is+invalid", w.Header().Get("Location"))
	})

	t.Run("missing salary", func(t *testing.T) {
		r, _ := setup(t, &admin, "")
		w := post(r, "/web/edit/positions/add", url.Values{"title": {"Engineer"}})

		assert.Equal(t, "/web/edit/positions?error=Base+Salary+is+required", w.Header().Get("Location"))
	})
}

func TestWeb_EditEmployees(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		dept := uint(1)
		m.employees.EXPECT().List(gomock.Any(), gomock.Any()).Return(response.Page{
			Items: []employee.EmployeeResponse{{
				ID: 9, FirstName: "Ivan", LastName: "Ivanov", FullName: "Ivanov Ivan",
				BirthDate: "1990-05-01", HireDate: "2020-01-15",
				Salary: decimal.NewFromInt(50000), Rate: decimal.NewFromInt(1),
				DepartmentID: &dept, StatusID: 1, SkillIDs: []uint{3},
			}},
		}, nil)
		expectLookups(m)

		w := get(r, "/web/edit/employees")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `action="/web/edit/employees/add"`)
		assert.Contains(t, body, `action="/web/edit/employees/update/9"`)
		assert.Contains(t, body, `<option value="3" selected>Go</option>`)
	})

	t.Run("add", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.employees.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Ivan", req.FirstName)
				assert.Nil(t, req.MiddleName)
				assert.Nil(t, req.Email)
				assert.Nil(t, req.PositionID)
				require.NotNil(t, req.DepartmentID)
				assert.Equal(t, uint(1), *req.DepartmentID)
				assert.Equal(t, []uint{3, 4}, req.SkillIDs)
				assert.Equal(t, "50000", req.Salary.String())
				return employee.EmployeeResponse{ID: 10}, nil
			})

		w := post(r, "/web/edit/employees/add", url.Values{
			"first_name": {"Ivan"}, "last_name": {"Ivanov"}, "middle_name": {""},
			"birth_date": {"1990-05-01"}, "hire_date": {"2020-01-15"}, "email": {""},
			"salary": {"50000"}, "rate": {"1.00"}, "department_id": {"1"}, "position_id": {""},
			"status_id": {"1"}, "skill_ids": {"3", "4"},
		})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/edit/employees", w.Header().Get("Location"))
	})

	t.Run("add with bad date", func(t *testing.T) {
		r, _ := setup(t, &admin, "")
		w := post(r, "/web/edit/employees/add", url.Values{
			"first_name": {"Ivan"}, "last_name": {"Ivanov"},
			"birth_date": {"01.05.1990"}, "hire_date": {"2020-01-15"}, "salary": {"1"},
		})

		assert.Equal(t, "/web/edit/employees?error=Birth+Date+is+invalid", w.Header().Get("Location"))
	})

	t.Run("update clears references and skills", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.employees.EXPECT().Update(gomock.Any(), uint(9), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, patch.Null[uint](), req.DepartmentID)
				assert.Equal(t, patch.Some[uint](2), req.PositionID)
				assert.Equal(t, patch.Null[string](), req.Phone)
				require.NotNil(t, req.SkillIDs)
				assert.Empty(t, *req.SkillIDs)
				return employee.EmployeeResponse{ID: 9}, nil
			})

		w := post(r, "/web/edit/employees/update/9", url.Values{
			"first_name": {"Ivan"}, "last_name": {"Ivanov"},
			"birth_date": {"1990-05-01"}, "hire_date": {"2020-01-15"},
			"salary": {"50000"}, "rate": {"1"}, "department_id": {""}, "position_id": {"2"},
			"phone": {""}, "status_id": {"1"},
		})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/web/edit/employees", w.Header().Get("Location"))
	})

	t.Run("delete", func(t *testing.T) {
		r, m := setup(t, &admin, "")
		m.employees.EXPECT().Delete(gomock.Any(), uint(9)).Return(nil)

		w := post(r, "/web/edit/employees/delete/9", nil)

		assert.Equal(t, "/web/edit/employees", w.Header().Get("Location"))
	})
}

func TestWeb_PanicRendersErrorPage(t *testing.T) {
	r, m := setup(t, &regular, "")
	m.departments.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, department.ListDepartmentsQuery) (response.Page, error) {
			panic("boom")
		})

	w := get(r, "/web/departments")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), apperror.ErrInternal.Message)
}
