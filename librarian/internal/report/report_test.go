package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/report"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	repo_mocks "github.com/Astemirdum/librarian/librarian/internal/repository/mocks"
)

func TestCollect(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	ctx := context.Background()

	now := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)
	since := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tx := repo_mocks.NewMockTx(c)
	tx.EXPECT().CountHistorySince(ctx, model.EventNewReader, since).Return(3, nil)
	tx.EXPECT().CountHistorySince(ctx, model.EventBookTaken, since).Return(7, nil)
	tx.EXPECT().CountReaders(ctx).Return(12, nil)
	tx.EXPECT().ListLoans(ctx, gomock.Any()).Return([]model.Loan{
		{ID: 1, BookCode: "B1", BookName: "Dune", BookAuthor: "Herbert", ReaderPhone: "+71234567890"},
	}, nil)

	d, err := report.Collect(ctx, tx, now, report.DefaultWindow)
	require.NoError(t, err)
	require.Equal(t, report.MonthStat{NewReaders: 3, BooksTaken: 7, TotalReaders: 12}, d.Stat)
	require.Equal(t, [][]string{{"B1", "Dune", "Herbert", "+71234567890"}}, d.Loans)
}

func TestRender(t *testing.T) {
	t.Parallel()
	d := report.Data{
		Generated: time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC),
		Stat:      report.MonthStat{NewReaders: 1, BooksTaken: 2, TotalReaders: 3},
		Loans: [][]string{
			{"B1", "Мастер и Маргарита", "Булгаков", "+71234567890"},
			{"B2", "A very long book name that certainly does not fit into its column", "Author", "+79990001122"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, d))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTranslit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"Dune", "Dune"},
		{"Булгаков", "Bulgakov"},
		{"Мастер и Маргарита", "Master i Margarita"},
		{"Щука, Ёж, Юла", "Shchuka, Ezh, Yula"},
		{"объём", "obem"},
		{"日本", "??"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, report.Translit(tt.in), tt.in)
	}
}
