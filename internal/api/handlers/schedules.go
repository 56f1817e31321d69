package handlers

import (
	"net/http"

	"laes-sim/internal/api/models"
	"laes-sim/internal/sim"

	"github.com/gin-gonic/gin"
)

// ListSchedules handles GET /api/v1/schedules.
func ListSchedules(c *gin.Context) {
	names := sim.PredefinedNames()
	resp := models.SchedulesResponse{
		Schedules: make([]models.ScheduleInfo, 0, len(names)),
	}
	for _, name := range names {
		schedule, _ := sim.PredefinedSchedule(name)
		resp.Schedules = append(resp.Schedules, models.ScheduleInfo{
			Name:       name,
			TotalHours: schedule.TotalHours(),
			Phases:     schedule,
		})
	}
	c.JSON(http.StatusOK, resp)
}
