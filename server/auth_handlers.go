package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/docquery/auth"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

func userToPayload(user *core.User) userPayload {
	return userPayload{
		Id:    strconv.FormatUint(uint64(user.Id), 10),
		Email: user.Email,
		Name:  user.Name,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if _, err := s.users.FindUserByEmail(r.Context(), req.Email); err == nil {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("error checking email", "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	user := &core.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if _, err := s.users.AddUser(r.Context(), user); err != nil {
		if errors.Is(err, core.ErrInvalidUser) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("error registering user", "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := s.tokens.Issue(user.Id)
	if err != nil {
		s.logger.Error("error issuing token", "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info("user registered", "userID", user.Id, "email", user.Email)
	respondJSON(w, http.StatusOK, authResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    userToPayload(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.FindUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.Id)
	if err != nil {
		s.logger.Error("error issuing token", "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    userToPayload(user),
	})
}
