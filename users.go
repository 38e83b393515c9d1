package main

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, validationError("Name, email, and password are required."))
		return
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	user := &User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		CreatedAt: s.now(),
	}
	if err := s.store.InsertUser(r.Context(), user); err != nil {
		if err == ErrDuplicateEmail {
			writeError(w, conflictError("Email already registered"))
			return
		}
		writeError(w, err)
		return
	}
	LogEvent("user_registered", user.ID.Hex(), nil)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "User registered successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	user, err := s.store.FindUserByEmail(r.Context(), req.Email)
	if err == ErrNotFound {
		writeError(w, authError("Invalid Email"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if !checkPassword(user.Password, req.Password) {
		writeError(w, authError("Invalid password"))
		return
	}
	token, err := s.issueToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	LogEvent("user_login", user.ID.Hex(), nil)
	writeJSON(w, http.StatusOK, map[string]string{
		"token":  token,
		"userId": user.ID.Hex(),
	})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "userId")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	user, err := s.store.FindUserByID(r.Context(), userID)
	if err == ErrNotFound {
		writeError(w, notFoundError("User not found"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]string{"name": user.Name, "email": user.Email},
	})
}
