package server

// Public site routes
const (
	RouteHome           = "/"
	RoutePrograms       = "/programs"
	RouteProgramDetail  = "/programs/{id}"
	RouteAdmissions     = "/admissions"
	RouteGallery        = "/gallery"
	RouteMandates       = "/mandates"
	RouteContact        = "/contact"
)

// Admin auth routes
const (
	RouteAdminLogin  = "/admin/login"
	RouteAdminLogout = "/admin/logout"
)

// Admin panel routes
const (
	RouteAdminDashboard       = "/admin"
	RouteAdminProgrammes      = "/admin/programmes"
	RouteAdminProgrammeNew    = "/admin/programmes/new"
	RouteAdminProgrammeEdit   = "/admin/programmes/{id}/edit"
	RouteAdminProgrammeDelete = "/admin/programmes/{id}/delete"
	RouteAdminGallery         = "/admin/gallery"
	RouteAdminGalleryNew      = "/admin/gallery/new"
	RouteAdminGalleryEdit     = "/admin/gallery/{id}/edit"
	RouteAdminGalleryDelete   = "/admin/gallery/{id}/delete"
	RouteAdminMandates        = "/admin/mandates"
	RouteAdminMandateNew      = "/admin/mandates/new"
	RouteAdminMandateEdit     = "/admin/mandates/{id}/edit"
	RouteAdminMandateDelete   = "/admin/mandates/{id}/delete"
	RouteAdminYears           = "/admin/mandates/years"
	RouteAdminYearDelete      = "/admin/mandates/years/{id}/delete"
	RouteAdminContent         = "/admin/content"
	RouteAdminContentEdit     = "/admin/content/{key}/edit"
	RouteAdminApplications    = "/admin/applications"
	RouteAdminApplication     = "/admin/applications/{id}"
	RouteAdminApplicationDel  = "/admin/applications/{id}/delete"
	RouteAdminUsers           = "/admin/users"
	RouteAdminUserNew         = "/admin/users/new"
	RouteAdminUserEdit        = "/admin/users/{id}/edit"
	RouteAdminUserDelete      = "/admin/users/{id}/delete"
	RouteAdminUserActive      = "/admin/users/{id}/active"
	RouteAdminPassword        = "/admin/password"
	RouteAdminSessionStatus   = "/admin/session/status"
)

// Operational routes
const (
	RouteMetrics = "/metrics"
)
