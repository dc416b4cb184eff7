package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Alx74909/Projet-ATLAS/models"
	"github.com/Alx74909/Projet-ATLAS/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PredictionHandler struct {
	predictor    *services.Predictor
	events       *services.EventPublisher
	modelVersion string
	now          func() time.Time
}

func NewPredictionHandler(predictor *services.Predictor, events *services.EventPublisher, modelVersion string) *PredictionHandler {
	return &PredictionHandler{
		predictor:    predictor,
		events:       events,
		modelVersion: modelVersion,
		now:          time.Now,
	}
}

type formView struct {
	Input                  models.OrderInput
	OrderStatusOptions     []models.Option
	OrderLineStatusOptions []models.Option
	WeatherOptions         []models.Option
	Result                 *models.Prediction
	Errors                 []string
}

func newFormView(in models.OrderInput) formView {
	return formView{
		Input:                  in,
		OrderStatusOptions:     models.OrderStatusOptions,
		OrderLineStatusOptions: models.OrderLineStatusOptions,
		WeatherOptions:         models.WeatherOptions,
	}
}

func (h *PredictionHandler) ShowForm(c *gin.Context) {
	in := models.DefaultOrderInput(h.now().Format(models.DateLayout))
	c.HTML(http.StatusOK, "index.html", newFormView(in))
}

func (h *PredictionHandler) SubmitForm(c *gin.Context) {
	var in models.OrderInput
	if err := c.ShouldBind(&in); err != nil {
		view := newFormView(in)
		view.Errors = validationMessages(err)
		c.HTML(http.StatusBadRequest, "index.html", view)
		return
	}

	pred, err := h.predictor.PredictOrder(in)
	if err != nil {
		log.Printf("prediction failed: %v", err)
		view := newFormView(in)
		view.Errors = []string{"prediction failed: " + err.Error()}
		c.HTML(http.StatusInternalServerError, "index.html", view)
		return
	}
	h.publish(pred)

	view := newFormView(in)
	view.Result = &pred
	c.HTML(http.StatusOK, "index.html", view)
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var in models.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"details": validationMessages(err),
		})
		return
	}

	pred, err := h.predictor.PredictOrder(in)
	if err != nil {
		log.Printf("prediction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "prediction failed",
			"details": err.Error(),
		})
		return
	}
	h.publish(pred)

	c.JSON(http.StatusOK, pred.Response())
}

func (h *PredictionHandler) publish(pred models.Prediction) {
	if !h.events.Available() {
		return
	}
	event := pred.Event(h.now().UTC(), h.modelVersion)
	go func() {
		if err := h.events.Publish(context.Background(), event); err != nil {
			log.Printf("publish prediction event failed: %v", err)
		}
	}()
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date formatted %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return msgs
}
