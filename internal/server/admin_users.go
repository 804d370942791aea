package server

import (
	"net/http"

	"moviebase/pkg/domain"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	s.handleLogin(w, r, domain.RoleAdmin)
}

func (s *Server) handleAddAdmin(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	acct, err := s.app.AddAccount(r.Context(), domain.RoleAdmin, req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Admin User Added Successfully", acct)
}

func (s *Server) handleAllAdmins(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	admins, err := s.app.Accounts(r.Context(), domain.RoleAdmin)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Admin Users Fetched Successfully", admins)
}

func (s *Server) handleAdminsPage(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	page, limit := pageParams(r)
	admins, total, err := s.app.AccountsPage(r.Context(), domain.RoleAdmin, page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Admin Users Fetched Successfully", newPageData(page, limit, total, admins))
}

func (s *Server) handleSingleAdmin(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	admin, err := s.app.Account(r.Context(), domain.RoleAdmin, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Admin User Fetched Successfully", admin)
}

func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	admin, err := s.app.UpdateAccount(r.Context(), domain.RoleAdmin, r.PathValue("id"), req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Admin User Updated Successfully", admin)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request, acct domain.Account) {
	if err := s.app.DeleteAccount(r.Context(), domain.RoleAdmin, acct.ID, r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Admin User Deleted Successfully", nil)
}
