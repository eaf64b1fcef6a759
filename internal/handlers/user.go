package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"userregistry/internal/models"
	"userregistry/internal/service"
	"userregistry/internal/store"
	"userregistry/internal/validation"
)

const requestTimeout = 5 * time.Second

func RegisterUser(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateUser
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[USER] [ERROR] register invalid body:", err)
			respondError(c, http.StatusBadRequest, "USER", "Invalid request body", err.Error())
			return
		}

		if errs := validation.ValidateCreate(req); len(errs) > 0 {
			respondValidationErrors(c, "USER", errs)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := users.Register(ctx, req)
		if err != nil {
			var dup *store.DuplicateError
			if errors.As(err, &dup) {
				respondError(c, http.StatusConflict, "USER", dup.Error(), "")
				return
			}
			log.Println("[USER] [ERROR] register failed:", err)
			respondError(c, http.StatusInternalServerError, "USER", "Failed to register user", "")
			return
		}

		log.Println("[USER] [INFO] user registered:", user.ID.Hex())
		respondSuccess(c, http.StatusCreated, "User registered successfully", user)
	}
}

func GetUsers(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		list, err := users.List(ctx)
		if err != nil {
			log.Println("[USER] [ERROR] list users failed:", err)
			respondError(c, http.StatusInternalServerError, "USER", "Failed to fetch users", "")
			return
		}

		respondSuccess(c, http.StatusOK, "Users retrieved successfully", list)
	}
}

func GetUserByID(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := users.GetByID(ctx, c.Param("id"))
		if err != nil {
			log.Println("[USER] [ERROR] get user failed:", err)
			respondError(c, http.StatusInternalServerError, "USER", "Failed to fetch user", "")
			return
		}
		if user == nil {
			respondError(c, http.StatusNotFound, "USER", "User not found", "")
			return
		}

		respondSuccess(c, http.StatusOK, "User retrieved successfully", user)
	}
}

func UpdateUser(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.UserPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			log.Println("[USER] [ERROR] update invalid body:", err)
			respondError(c, http.StatusBadRequest, "USER", "Invalid request body", err.Error())
			return
		}

		if errs := validation.ValidatePatch(patch); len(errs) > 0 {
			respondValidationErrors(c, "USER", errs)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := users.Update(ctx, c.Param("id"), patch)
		if err != nil {
			var dup *store.DuplicateError
			if errors.As(err, &dup) {
				respondError(c, http.StatusConflict, "USER", dup.Error(), "")
				return
			}
			log.Println("[USER] [ERROR] update user failed:", err)
			respondError(c, http.StatusInternalServerError, "USER", "Failed to update user", "")
			return
		}
		if user == nil {
			respondError(c, http.StatusNotFound, "USER", "User not found", "")
			return
		}

		log.Println("[USER] [INFO] user updated:", user.ID.Hex())
		respondSuccess(c, http.StatusOK, "User updated successfully", user)
	}
}

func DeleteUser(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		deleted, err := users.Delete(ctx, c.Param("id"))
		if err != nil {
			log.Println("[USER] [ERROR] delete user failed:", err)
			respondError(c, http.StatusInternalServerError, "USER", "Failed to delete user", "")
			return
		}
		if !deleted {
			respondError(c, http.StatusNotFound, "USER", "User not found", "")
			return
		}

		log.Println("[USER] [INFO] user deleted:", c.Param("id"))
		respondSuccess(c, http.StatusOK, "User deleted successfully", nil)
	}
}
