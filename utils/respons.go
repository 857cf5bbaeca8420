package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody es el sobre uniforme de error. Detail solo se llena en
// errores internos, para diagnóstico del operador.
type ErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorBody{Message: err.Error()})
}

// RespondInternal responde 500 con el texto crudo del error en detail.
func RespondInternal(c *gin.Context, err error) {
	if ErrorLogger != nil {
		ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Message: "Error", Detail: err.Error()})
}

// Created responde 201 con cabecera Location.
func Created(c *gin.Context, location string, body interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, body)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
