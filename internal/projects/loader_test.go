package projects

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"folio.dev/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type errSource struct{ err error }

func (s errSource) Projects(ctx context.Context) ([]models.Project, error) {
	return nil, s.err
}

func names(list []models.Project) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Name
	}
	return out
}

func TestLoad_YieldsInSourceOrder(t *testing.T) {
	src := NewStaticSource(
		models.Project{Name: "one"},
		models.Project{Name: "two"},
		models.Project{Name: "three"},
	)

	seq := Load(context.Background(), src)
	var got []string
	for {
		p, ok := seq.Next()
		if !ok {
			break
		}
		got = append(got, p.Name)
	}

	require.NoError(t, seq.Err())
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestLoad_EachCallIsAFreshPass(t *testing.T) {
	src := NewStaticSource(models.Project{Name: "a"}, models.Project{Name: "b"})

	first, err := Buffer(Load(context.Background(), src))
	require.NoError(t, err)
	second, err := Buffer(Load(context.Background(), src))
	require.NoError(t, err)

	assert.Equal(t, names(first), names(second))
}

func TestLoad_SourceErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("rate limited")

	list, err := Buffer(Load(context.Background(), errSource{err: boom}))

	assert.Same(t, boom, err)
	assert.Nil(t, list)
}

func TestLoad_CancelStopsWithoutPartialList(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	seq := Load(ctx, NewStaticSource())

	_, ok := seq.Next()
	require.True(t, ok)
	cancel()

	list, err := Buffer(seq)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, list)
}

func TestSequence_BreakClosesProducer(t *testing.T) {
	seq := Load(context.Background(), NewStaticSource())

	for p := range seq.All() {
		assert.NotEmpty(t, p.Name)
		break
	}
	// goleak in TestMain fails the run if the producer is still blocked
	seq.Close()
}

func TestStaticSource_ReturnsCopies(t *testing.T) {
	src := NewStaticSource(models.Project{Name: "x", Description: models.String("orig")})

	list, err := src.Projects(context.Background())
	require.NoError(t, err)
	*list[0].Description = "mutated"
	list[0].Stars = 99

	again, err := src.Projects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "orig", *again[0].Description)
	assert.Zero(t, again[0].Stars)
}
