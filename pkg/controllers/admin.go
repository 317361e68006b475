package controllers

import (
	"net/http"

	"torget-app-io/api/internal"
	"torget-app-io/api/pkg/models"
	"torget-app-io/api/pkg/services"
	"torget-app-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	forms    *services.FormService
	media    *services.MediaService
	notifier *internal.Notifier
}

func InitAdminController(forms *services.FormService, media *services.MediaService, notifier *internal.Notifier) *AdminController {
	return &AdminController{forms: forms, media: media, notifier: notifier}
}

// ListForms handles GET /admin/forms
func (ac *AdminController) ListForms() gin.HandlerFunc {
	return func(c *gin.Context) {
		util.HandleSuccess(c, http.StatusOK, "success", services.EntityNames())
	}
}

// GetFormConfig handles GET /admin/forms/:entity
func (ac *AdminController) GetFormConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		config, err := services.FormConfigFor(c.Param("entity"))
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", config)
	}
}

type formSubmission struct {
	Values map[string]string `json:"values" binding:"required"`
}

// SubmitForm handles POST /admin/forms/:entity. An id query parameter updates
// the existing entity; without one a new entity is created.
func (ac *AdminController) SubmitForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		config, err := services.FormConfigFor(c.Param("entity"))
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		var submission formSubmission
		if err := c.ShouldBindJSON(&submission); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		result, err := ac.forms.Submit(ctx, config, submission.Values, c.Query("id"), nil)
		if err != nil {
			if verrs, ok := err.(services.ValidationErrors); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"status": http.StatusUnprocessableEntity,
					"error":  verrs.Error(),
					"fields": verrs,
				})
				return
			}
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		event := internal.EventEntityUpdated
		if result.Created {
			event = internal.EventEntitySaved
		}
		ac.notifier.Publish(ctx, event, config.EntityName+":"+result.EntityId)

		util.HandleSuccess(c, http.StatusOK, "Saved "+config.Title, result)
	}
}

// UploadFile handles POST /admin/forms/:entity/upload. The returned URL is
// what a file-type field carries on submit.
func (ac *AdminController) UploadFile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		config, err := services.FormConfigFor(c.Param("entity"))
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		defer file.Close()

		result, err := ac.media.FileUpload(ctx, models.File{File: file}, config.Bucket)
		if err != nil {
			util.HandleError(c, http.StatusBadGateway, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "File uploaded", result)
	}
}
