package server

import (
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func (s *Server) initRoutes() {
	anyAdmin := s.RequireSessionAuth()
	superOnly := s.RequireSessionAuth(backend.RoleSuperAdmin)

	// PUBLIC SITE
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RoutePrograms, ChainMiddleware(s.ProgramsHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteProgramDetail, ChainMiddleware(s.ProgramDetailHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAdmissions, ChainMiddleware(s.AdmissionsHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteGallery, ChainMiddleware(s.GalleryHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteMandates, ChainMiddleware(s.MandatesHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteContact, ChainMiddleware(s.ContactGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteContact, ChainMiddleware(s.ContactPostHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteAdminLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAdminLogin, ChainMiddleware(s.LoginSubmitHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAdminLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// ADMIN PANEL (session gated)
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(anyAdmin)...))

	s.RegisterRouteHandler("GET "+RouteAdminProgrammes, ChainMiddleware(s.AdminProgrammesListHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminProgrammeNew, ChainMiddleware(s.AdminProgrammeCreateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("GET "+RouteAdminProgrammeEdit, ChainMiddleware(s.AdminProgrammeEditFormHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminProgrammeEdit, ChainMiddleware(s.AdminProgrammeUpdateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminProgrammeDelete, ChainMiddleware(s.AdminProgrammeDeleteHandler(), s.HTMLMiddleWare(anyAdmin)...))

	s.RegisterRouteHandler("GET "+RouteAdminGallery, ChainMiddleware(s.AdminGalleryListHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminGalleryNew, ChainMiddleware(s.AdminGalleryCreateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("GET "+RouteAdminGalleryEdit, ChainMiddleware(s.AdminGalleryEditFormHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminGalleryEdit, ChainMiddleware(s.AdminGalleryUpdateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminGalleryDelete, ChainMiddleware(s.AdminGalleryDeleteHandler(), s.HTMLMiddleWare(anyAdmin)...))

	s.RegisterRouteHandler("GET "+RouteAdminMandates, ChainMiddleware(s.AdminMandatesListHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminMandateNew, ChainMiddleware(s.AdminMandateCreateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("GET "+RouteAdminMandateEdit, ChainMiddleware(s.AdminMandateEditFormHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminMandateEdit, ChainMiddleware(s.AdminMandateUpdateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminMandateDelete, ChainMiddleware(s.AdminMandateDeleteHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminYears, ChainMiddleware(s.AdminYearCreateHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminYearDelete, ChainMiddleware(s.AdminYearDeleteHandler(), s.HTMLMiddleWare(anyAdmin)...))

	s.RegisterRouteHandler("GET "+RouteAdminContent, ChainMiddleware(s.AdminContentListHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("GET "+RouteAdminContentEdit, ChainMiddleware(s.AdminContentEditFormHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminContentEdit, ChainMiddleware(s.AdminContentUpdateHandler(), s.HTMLMiddleWare(anyAdmin)...))

	s.RegisterRouteHandler("GET "+RouteAdminApplications, ChainMiddleware(s.AdminApplicationsListHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("GET "+RouteAdminApplication, ChainMiddleware(s.AdminApplicationDetailHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminApplication, ChainMiddleware(s.AdminApplicationStatusHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminApplicationDel, ChainMiddleware(s.AdminApplicationDeleteHandler(), s.HTMLMiddleWare(anyAdmin)...))

	// Admin-user management is restricted to superadmins
	s.RegisterRouteHandler("GET "+RouteAdminUsers, ChainMiddleware(s.AdminUsersListHandler(), s.HTMLMiddleWare(superOnly)...))
	s.RegisterRouteHandler("POST "+RouteAdminUserNew, ChainMiddleware(s.AdminUserCreateHandler(), s.HTMLMiddleWare(superOnly)...))
	s.RegisterRouteHandler("GET "+RouteAdminUserEdit, ChainMiddleware(s.AdminUserEditFormHandler(), s.HTMLMiddleWare(superOnly)...))
	s.RegisterRouteHandler("POST "+RouteAdminUserEdit, ChainMiddleware(s.AdminUserUpdateHandler(), s.HTMLMiddleWare(superOnly)...))
	s.RegisterRouteHandler("POST "+RouteAdminUserDelete, ChainMiddleware(s.AdminUserDeleteHandler(), s.HTMLMiddleWare(superOnly)...))
	s.RegisterRouteHandler("POST "+RouteAdminUserActive, ChainMiddleware(s.AdminUserActiveHandler(), s.HTMLMiddleWare(superOnly)...))

	s.RegisterRouteHandler("GET "+RouteAdminPassword, ChainMiddleware(s.PasswordFormHandler(), s.HTMLMiddleWare(anyAdmin)...))
	s.RegisterRouteHandler("POST "+RouteAdminPassword, ChainMiddleware(s.PasswordUpdateHandler(), s.HTMLMiddleWare(anyAdmin)...))

	// The status poll deliberately bypasses the activity tick so polling
	// never keeps a session alive on its own.
	s.RegisterRouteHandler("GET "+RouteAdminSessionStatus, ChainMiddleware(s.SessionStatusHandler(), s.HTMLMiddleWare(s.AttachSession())...))

	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
}
