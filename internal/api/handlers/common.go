package handlers

import (
	"net/http"

	"laes-sim/internal/api/models"
	"laes-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// buildConfig overlays a request override onto the default plant and
// validates the result. A nil override yields the validated defaults.
func buildConfig(ov *models.ConfigOverride) (*config.Plant, error) {
	cfg := config.Default()
	if ov != nil {
		cfg = config.Merge(cfg, config.Plant{
			ChargePowerMW:        ov.ChargePowerMW,
			DischargePowerMW:     ov.DischargePowerMW,
			StorageDurationHours: ov.StorageDurationHours,

			TankCapacityTonnes: ov.TankCapacityTonnes,
			TankMinLevelPct:    ov.TankMinLevelPct,
			BoiloffPctPerDay:   ov.BoiloffPctPerDay,

			PChargeBar:        ov.PChargeBar,
			PDischargeBar:     ov.PDischargeBar,
			TAmbientC:         ov.TAmbientC,
			TSuperheatC:       ov.TSuperheatC,
			NCompressorStages: ov.NCompressorStages,
			NTurbineStages:    ov.NTurbineStages,
			BypassFraction:    ov.BypassFraction,

			EtaCompressor:   ov.EtaCompressor,
			EtaCryoTurbine:  ov.EtaCryoTurbine,
			EtaTurbine:      ov.EtaTurbine,
			EtaPump:         ov.EtaPump,
			HXEffectiveness: ov.HXEffectiveness,

			HotStorageLossPctPerDay:  ov.HotStorageLossPctPerDay,
			HotStorageEfficiency:     ov.HotStorageEfficiency,
			ColdStorageLossPctPerDay: ov.ColdStorageLossPctPerDay,
			ColdStorageEfficiency:    ov.ColdStorageEfficiency,

			PriceOffpeakMWh: ov.PriceOffpeakMWh,
			PriceOnpeakMWh:  ov.PriceOnpeakMWh,
			DiscountRate:    ov.DiscountRate,
			ProjectYears:    ov.ProjectYears,
		})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func errJSON(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func badRequest(c *gin.Context, code string, err error) {
	errJSON(c, http.StatusBadRequest, code, err.Error())
}
