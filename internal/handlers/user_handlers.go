package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"delivery_admin_echo/internal/models"
	"delivery_admin_echo/internal/router"
	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/web/templates/pages"
	"delivery_admin_echo/web/templates/shared"
)

// entityInfo describes how one route entity maps onto users
type entityInfo struct {
	UserType models.UserType
	Param    string
	BasePath string
	Heading  string
	Label    string
	Nav      string
}

var entities = map[string]entityInfo{
	router.EntityAdmin: {
		UserType: models.UserTypeAdmin, Param: "adminId", BasePath: "/admin",
		Heading: "Admins", Label: "Admin", Nav: shared.NavAdmin,
	},
	router.EntityDriver: {
		UserType: models.UserTypeDriver, Param: "driverId", BasePath: "/driver",
		Heading: "Drivers", Label: "Driver", Nav: shared.NavDriver,
	},
	router.EntityCustomer: {
		UserType: models.UserTypeCustomer, Param: "custId", BasePath: "/cust",
		Heading: "Customers", Label: "Customer", Nav: shared.NavCustomer,
	},
}

// UserHandler serves the admin, driver and customer pages
type UserHandler struct {
	store services.UserStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(store services.UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func entityFor(c echo.Context) (router.Match, entityInfo, error) {
	m := currentRoute(c)
	info, ok := entities[m.Entity]
	if !ok {
		return m, info, echo.NewHTTPError(http.StatusNotFound)
	}
	return m, info, nil
}

// parseEntityID accepts positive decimal ids that fit a uint32 primary key
func parseEntityID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

// ListUsers renders the users of the matched entity
func (h *UserHandler) ListUsers(c echo.Context) error {
	_, info, err := entityFor(c)
	if err != nil {
		return err
	}

	users, err := h.store.ListUsers(c.Request().Context(), info.UserType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users").SetInternal(err)
	}

	props := pages.UsersListProps{
		LayoutProps: layoutProps(c, info.Heading, info.Nav,
			shared.Breadcrumb{Title: "Home", URL: "/"},
			shared.Breadcrumb{Title: info.Heading, URL: ""},
		),
		Heading:  info.Heading,
		BasePath: info.BasePath,
		Users:    users,
	}
	if info.UserType == models.UserTypeAdmin {
		props.CreateURL = info.BasePath + "/new"
	}

	return render(c, http.StatusOK, pages.UsersList(props))
}

// UserDetail renders one user. A malformed id is a 400, an unknown one a 404.
func (h *UserHandler) UserDetail(c echo.Context) error {
	m, info, err := entityFor(c)
	if err != nil {
		return err
	}

	raw := m.Param(info.Param)
	id, err := parseEntityID(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("%q is not a valid %s identifier.", raw, strings.ToLower(info.Label))).SetInternal(err)
	}

	user, err := h.store.GetUser(c.Request().Context(), info.UserType, id)
	if errors.Is(err, services.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("%s %d was not found.", info.Label, id))
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user").SetInternal(err)
	}

	props := pages.UserDetailProps{
		LayoutProps: layoutProps(c, user.Name, info.Nav,
			shared.Breadcrumb{Title: "Home", URL: "/"},
			shared.Breadcrumb{Title: info.Heading, URL: info.BasePath},
			shared.Breadcrumb{Title: user.Name, URL: ""},
		),
		KindLabel: info.Label,
		BasePath:  info.BasePath,
		User:      user,
	}

	return render(c, http.StatusOK, pages.UserDetail(props))
}

func adminFormProps(c echo.Context, values models.User, errs map[string]string) pages.AdminFormProps {
	return pages.AdminFormProps{
		LayoutProps: layoutProps(c, "New Admin", shared.NavAdmin,
			shared.Breadcrumb{Title: "Home", URL: "/"},
			shared.Breadcrumb{Title: "Admins", URL: "/admin"},
			shared.Breadcrumb{Title: "New Admin", URL: ""},
		),
		Values: values,
		Errors: errs,
	}
}

// NewAdminPage renders the create admin form
func (h *UserHandler) NewAdminPage(c echo.Context) error {
	return render(c, http.StatusOK, pages.AdminForm(adminFormProps(c, models.User{}, nil)))
}

// StoreAdmin handles the creation of a new admin
func (h *UserHandler) StoreAdmin(c echo.Context) error {
	user := models.User{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		UserType: models.UserTypeAdmin,
	}

	err := h.store.CreateUser(c.Request().Context(), &user)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return render(c, http.StatusBadRequest, pages.AdminForm(adminFormProps(c, user, verr.Fields)))
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create admin").SetInternal(err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/%d", user.ID))
}
