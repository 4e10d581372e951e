package router

// DefaultRoutes is the dashboard's route declaration
func DefaultRoutes() []Route {
	return []Route{
		{Index: true, View: ViewHome},
		{Segment: "login", View: ViewLogin},
		{Segment: "admin", Entity: EntityAdmin, Children: []Route{
			{Index: true, View: ViewUserList},
			{Segment: ":adminId", View: ViewUserDetail},
			{Segment: "new", View: ViewNewAdmin},
		}},
		{Segment: "driver", Entity: EntityDriver, Children: []Route{
			{Index: true, View: ViewUserList},
			{Segment: ":driverId", View: ViewUserDetail},
		}},
		{Segment: "cust", Entity: EntityCustomer, Children: []Route{
			{Index: true, View: ViewUserList},
			{Segment: ":custId", View: ViewUserDetail},
		}},
	}
}

// DefaultTable compiles DefaultRoutes
func DefaultTable() *Table {
	return MustTable(DefaultRoutes()...)
}
