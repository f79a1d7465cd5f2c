package pipelineserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solcrm/pipeline-api/internal/domains/analytics/aggregate"
	analyticsports "github.com/solcrm/pipeline-api/internal/domains/analytics/ports"
	projecthttpmapper "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/http/mapper"
)

// DashboardAPI exposes the aggregated dashboard read model.
type DashboardAPI struct {
	service analyticsports.Service
}

// NewDashboardAPI creates a DashboardAPI backed by the analytics service.
func NewDashboardAPI(service analyticsports.Service) DashboardAPI {
	return DashboardAPI{service: service}
}

type stageSliceResponse struct {
	Stage      string `json:"stage"`
	Count      int    `json:"count"`
	ColorToken string `json:"color_token"`
}

type clientSliceResponse struct {
	Client          string  `json:"client"`
	Amount          float64 `json:"amount"`
	AmountFormatted string  `json:"amount_formatted"`
	ColorToken      string  `json:"color_token"`
}

type monthPointResponse struct {
	Month               string  `json:"month"`
	Amount              float64 `json:"amount"`
	Cumulative          float64 `json:"cumulative"`
	CumulativeFormatted string  `json:"cumulative_formatted"`
}

type stageColumnResponse struct {
	Stage               string  `json:"stage"`
	DisplayLabel        string  `json:"display_label"`
	Count               int     `json:"count"`
	TotalValue          float64 `json:"total_value"`
	TotalValueFormatted string  `json:"total_value_formatted"`
	AvgProbability      float64 `json:"avg_probability"`
}

type summaryStatsResponse struct {
	TotalPipelineValue          float64 `json:"total_pipeline_value"`
	TotalPipelineValueFormatted string  `json:"total_pipeline_value_formatted"`
	TotalWonValue               float64 `json:"total_won_value"`
	TotalWonValueFormatted      string  `json:"total_won_value_formatted"`
	AvgProbability              float64 `json:"avg_probability"`
	CompletedCount              int     `json:"completed_count"`
}

type dashboardResponse struct {
	Stats        summaryStatsResponse        `json:"stats"`
	StageSlices  []stageSliceResponse        `json:"stage_slices"`
	ClientSlices []clientSliceResponse       `json:"client_slices"`
	Timeline     []monthPointResponse        `json:"timeline"`
	StageColumns []stageColumnResponse       `json:"stage_columns"`
	Projects     []projecthttpmapper.Project `json:"projects"`
}

// Get /v1/dashboard
// Aggregated stats, chart series, and the display-ordered project list
func (api *DashboardAPI) GetDashboard(c *gin.Context) {
	view, err := api.service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	resp := dashboardResponse{
		Stats: summaryStatsResponse{
			TotalPipelineValue:          view.Stats.TotalPipelineValue,
			TotalPipelineValueFormatted: aggregate.FormatINR(view.Stats.TotalPipelineValue),
			TotalWonValue:               view.Stats.TotalWonValue,
			TotalWonValueFormatted:      aggregate.FormatINR(view.Stats.TotalWonValue),
			AvgProbability:              view.Stats.AvgProbability,
			CompletedCount:              view.Stats.CompletedCount,
		},
		StageSlices:  make([]stageSliceResponse, 0, len(view.StageSlices)),
		ClientSlices: make([]clientSliceResponse, 0, len(view.ClientSlices)),
		Timeline:     make([]monthPointResponse, 0, len(view.Timeline)),
		StageColumns: make([]stageColumnResponse, 0, len(view.StageColumns)),
		Projects:     projecthttpmapper.FromProjectionList(view.Projects),
	}
	for _, s := range view.StageSlices {
		resp.StageSlices = append(resp.StageSlices, stageSliceResponse{
			Stage:      s.Stage,
			Count:      s.Count,
			ColorToken: s.ColorToken,
		})
	}
	for _, s := range view.ClientSlices {
		resp.ClientSlices = append(resp.ClientSlices, clientSliceResponse{
			Client:          s.Client,
			Amount:          s.Amount,
			AmountFormatted: aggregate.FormatINR(s.Amount),
			ColorToken:      s.ColorToken,
		})
	}
	for _, p := range view.Timeline {
		resp.Timeline = append(resp.Timeline, monthPointResponse{
			Month:               p.MonthLabel,
			Amount:              p.Amount,
			Cumulative:          p.CumulativeAmount,
			CumulativeFormatted: aggregate.FormatINR(p.CumulativeAmount),
		})
	}
	for _, col := range view.StageColumns {
		resp.StageColumns = append(resp.StageColumns, stageColumnResponse{
			Stage:               col.Stage,
			DisplayLabel:        col.DisplayLabel,
			Count:               col.Count,
			TotalValue:          col.TotalValue,
			TotalValueFormatted: aggregate.FormatINR(col.TotalValue),
			AvgProbability:      col.AvgProbability,
		})
	}
	c.JSON(http.StatusOK, resp)
}
