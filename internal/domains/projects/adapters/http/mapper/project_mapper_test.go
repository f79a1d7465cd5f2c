package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/shared/projection"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestToMutationInput_ParsesDates(t *testing.T) {
	payload := MutationProject{
		Name:         strPtr("Warehouse Retrofit"),
		Client:       strPtr("Acme Co"),
		Amount:       floatPtr(2500),
		Deadline:     strPtr("2024-06-15"),
		ReceivedDate: strPtr("2024-05-01"),
		Stage:        strPtr("quoted"),
	}

	input, err := ToMutationInput(payload)
	require.NoError(t, err)
	require.NotNil(t, input.Deadline)
	require.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), *input.Deadline)
	require.NotNil(t, input.ReceivedDate)
	require.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), *input.ReceivedDate)
	require.Equal(t, "quoted", *input.Stage)
}

func TestToMutationInput_AbsentFieldsStayNil(t *testing.T) {
	input, err := ToMutationInput(MutationProject{Name: strPtr("Minimal")})
	require.NoError(t, err)
	require.Nil(t, input.Client)
	require.Nil(t, input.Deadline)
	require.Nil(t, input.ReceivedDate)
	require.Nil(t, input.Stage)
}

func TestToMutationInput_RejectsMalformedDates(t *testing.T) {
	_, err := ToMutationInput(MutationProject{Deadline: strPtr("15/06/2024")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "deadline")

	_, err = ToMutationInput(MutationProject{ReceivedDate: strPtr("not-a-date")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "received_date")
}

func TestFromProjection_FormatsDates(t *testing.T) {
	received := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	entity := &domain.Project{
		ID:           "p1",
		Name:         "Warehouse Retrofit",
		Client:       "Acme Co",
		Amount:       2500,
		Deadline:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		ReceivedDate: &received,
		Stage:        domain.StageQuoted,
	}
	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	proj := &projecttypes.ProjectProjection{
		Entity:   entity,
		Metadata: projection.Metadata{CreatedAt: created, UpdatedAt: created},
	}

	out := FromProjection(proj)
	require.Equal(t, "p1", out.ID)
	require.Equal(t, "2024-06-15", out.Deadline)
	require.Equal(t, "2024-04-02", out.ReceivedDate)
	require.Equal(t, "quoted", out.Stage)
	require.Equal(t, created, out.CreatedAt)
}

func TestFromProjectionList_SkipsNilEntries(t *testing.T) {
	proj := &projecttypes.ProjectProjection{
		Entity: &domain.Project{ID: "p1", Name: "Only", Client: "Acme Co", Stage: domain.StageArrival},
	}

	out := FromProjectionList([]*projecttypes.ProjectProjection{nil, proj, {}})
	require.Len(t, out, 1)
	require.Equal(t, "p1", out[0].ID)
	require.Empty(t, out[0].Deadline)
}
