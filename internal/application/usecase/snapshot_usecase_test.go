package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
)

func saveRequest(month int, headcount string, final bool) dto.SaveSnapshotRequest {
	return dto.SaveSnapshotRequest{
		Year:      2025,
		Month:     month,
		Headcount: json.RawMessage(headcount),
		IsFinal:   final,
	}
}

func TestSnapshotSave_StoresAndReadsBack(t *testing.T) {
	e := newEnv()
	uc := e.snapshotUseCase(false, nil)

	in := saveRequest(3, `[{"department":"A","headcount":20}]`, true)
	in.NHT = json.RawMessage("null")
	sum, err := uc.Save(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2025, sum.Year)
	assert.Equal(t, 3, sum.Month)
	assert.True(t, sum.IsFinal)

	got, err := uc.Get(ctx, sum.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"department":"A","headcount":20}]`, string(got.Headcount))
	assert.Nil(t, got.NHT)
	assert.Nil(t, got.Terms)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sum.ID, list[0].ID)

	_, err = uc.Get(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotSave_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   dto.SaveSnapshotRequest
	}{
		{"mes cero", saveRequest(0, "", true)},
		{"mes trece", saveRequest(13, "", true)},
		{"año fuera de rango", dto.SaveSnapshotRequest{Year: 1999, Month: 1}},
		{"payload objeto", saveRequest(1, `{"department":"A"}`, false)},
		{"payload roto", saveRequest(1, `[{"department":`, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()

			_, err := e.snapshotUseCase(false, nil).Save(ctx, tt.in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, e.s.snapshots)
		})
	}
}

func TestSnapshotSave_DuplicateFinalPolicy(t *testing.T) {
	e := newEnv()
	reject := e.snapshotUseCase(true, nil)

	_, err := reject.Save(ctx, saveRequest(2, "", true))
	require.NoError(t, err)

	_, err = reject.Save(ctx, saveRequest(2, "", true))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Un borrador del mismo mes no choca con el final.
	_, err = reject.Save(ctx, saveRequest(2, "", false))
	assert.NoError(t, err)

	_, err = e.snapshotUseCase(false, nil).Save(ctx, saveRequest(2, "", true))
	assert.NoError(t, err)
	assert.Len(t, e.s.snapshots, 3)
}

func TestSnapshotYTD_FoldsFinalSnapshots(t *testing.T) {
	e := newEnv()
	uc := e.snapshotUseCase(false, nil)
	for _, in := range []dto.SaveSnapshotRequest{
		saveRequest(1, `[{"department":"A","headcount":10}]`, true),
		saveRequest(2, `[{"department":"A","headcount":20}]`, true),
		saveRequest(3, `[{"department":"A","headcount":99}]`, false),
		saveRequest(4, `[{"department":"A","headcount":50}]`, true),
	} {
		_, err := uc.Save(ctx, in)
		require.NoError(t, err)
	}

	r, err := uc.YTD(ctx, dto.YTDQuery{Year: 2025, ThroughMonth: 3})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, r.MonthsIncluded)
	require.Len(t, r.Headcount, 1)
	assert.Equal(t, 20, r.Headcount[0].Headcount)
	assert.Equal(t, "15", r.Headcount[0].AverageHeadcount.String())

	_, err = uc.YTD(ctx, dto.YTDQuery{Year: 2025, ThroughMonth: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSnapshotYTDPDF_RendersReport(t *testing.T) {
	e := newEnv()
	renderer := &fakeRenderer{}
	uc := e.snapshotUseCase(false, renderer)
	_, err := uc.Save(ctx, saveRequest(1, `[{"department":"A","headcount":10}]`, true))
	require.NoError(t, err)

	pdf, err := uc.YTDPDF(ctx, dto.YTDQuery{Year: 2025, ThroughMonth: 12})

	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, renderer.got)
	assert.Equal(t, 2025, renderer.got.Year)
	assert.Equal(t, []int{1}, renderer.got.MonthsIncluded)
}
