package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"paint-estimator/models"
	"paint-estimator/services"
	"paint-estimator/utils"
)

type RoomController struct {
	RoomSvc      *services.RoomService
	ReportSvc    *services.ReportService
	Logger       *zap.Logger
	DefaultCoats int
}

// NewRoomController Constructor
func NewRoomController(roomSvc *services.RoomService, reportSvc *services.ReportService, logger *zap.Logger, defaultCoats int) *RoomController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCoats < 1 {
		defaultCoats = 2
	}
	return &RoomController{
		RoomSvc:      roomSvc,
		ReportSvc:    reportSvc,
		Logger:       logger,
		DefaultCoats: defaultCoats,
	}
}

type tableRow struct {
	ID    string
	Cells []string
}

// ----------------------------------------------------
// Form page (GET /)
// ----------------------------------------------------

func (rc *RoomController) Index(c *gin.Context) {
	rc.renderPage(c, http.StatusOK, c.Query("added"), "")
}

func (rc *RoomController) renderPage(c *gin.Context, code int, added, errMsg string) {
	summary := rc.ReportSvc.Summarize(rc.RoomSvc.List())

	rows := make([]tableRow, 0, len(summary.Rooms))
	for _, r := range summary.Rooms {
		rows = append(rows, tableRow{ID: r.ID, Cells: services.ExportRow(r)})
	}

	c.HTML(code, "index.tmpl", gin.H{
		"Added":        added,
		"Error":        errMsg,
		"DefaultCoats": rc.DefaultCoats,
		"Summary":      summary,
		"Header":       services.ExportHeader,
		"Rows":         rows,
		"TotalLabel":   services.TotalLabel,
	})
}

// ----------------------------------------------------
// Form submit (POST /rooms)
// ----------------------------------------------------

func (rc *RoomController) SubmitForm(c *gin.Context) {
	// blank names are dropped without a message, like an unsubmitted form
	if strings.TrimSpace(c.PostForm("name")) == "" {
		rc.Logger.Debug("form submitted without room name")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	in := models.RoomInput{Coats: rc.DefaultCoats}
	if err := c.ShouldBind(&in); err != nil {
		rc.Logger.Debug("form binding rejected", zap.Error(err))
		rc.renderPage(c, http.StatusBadRequest, "", bindingMessage(err))
		return
	}

	room, err := rc.RoomSvc.Create(in)
	if err != nil {
		rc.renderPage(c, http.StatusBadRequest, "", userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/?added="+url.QueryEscape(room.Name))
}

// ----------------------------------------------------
// Form delete (POST /rooms/:id/delete)
// ----------------------------------------------------

func (rc *RoomController) DeleteFromForm(c *gin.Context) {
	id := c.Param("id")
	if _, err := rc.RoomSvc.DeleteByID(id); err != nil {
		rc.Logger.Warn("form delete of unknown room", zap.String("room_id", id))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ----------------------------------------------------
// Downloads (GET /export/csv, GET /export/xlsx)
// ----------------------------------------------------

func (rc *RoomController) DownloadCSV(c *gin.Context) {
	data, err := rc.ReportSvc.ToCSV(rc.RoomSvc.List())
	if err != nil {
		rc.Logger.Error("csv export failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Export failed")
		return
	}
	utils.Attachment(c, services.CSVFileName, services.CSVMimeType, data)
}

func (rc *RoomController) DownloadXLSX(c *gin.Context) {
	data, err := rc.ReportSvc.ToXLSX(rc.RoomSvc.List())
	if err != nil {
		rc.Logger.Error("xlsx export failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Export failed")
		return
	}
	utils.Attachment(c, services.XLSXFileName, services.XLSXMimeType, data)
}

// ----------------------------------------------------
// JSON API
// ----------------------------------------------------

// GET /api/rooms
func (rc *RoomController) ListRooms(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, rc.ReportSvc.Summarize(rc.RoomSvc.List()))
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	in := models.RoomInput{Coats: rc.DefaultCoats}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	room, err := rc.RoomSvc.Create(in)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, userMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// DELETE /api/rooms/:position (1-based)
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	room, err := rc.RoomSvc.DeleteAtText(c.Param("position"))
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "Please enter a valid integer")
	case errors.Is(err, services.ErrOutOfRange):
		utils.JSONError(c, http.StatusNotFound, "Invalid number")
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	default:
		utils.JSONSuccess(c, http.StatusOK, room)
	}
}

// userMessage maps service errors to the text shown to users.
func userMessage(err error) string {
	var posErr *services.PositionError
	switch {
	case errors.As(err, &posErr):
		return "Invalid number"
	case errors.Is(err, services.ErrInvalidInput):
		msg := strings.TrimSuffix(err.Error(), ": "+services.ErrInvalidInput.Error())
		return strings.ToUpper(msg[:1]) + msg[1:]
	default:
		return err.Error()
	}
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s must be %s %s", fe.Field(), comparison(fe.Tag()), fe.Param()))
		}
		return strings.Join(parts, "; ")
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return "Please enter a valid number"
	}
	return "Invalid request payload"
}

func comparison(tag string) string {
	switch tag {
	case "gte":
		return "at least"
	case "lte":
		return "at most"
	default:
		return tag
	}
}
