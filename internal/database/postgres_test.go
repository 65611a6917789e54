package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/codemash/internal/conference"
	"github.com/JonMunkholm/codemash/internal/store"
)

type row struct {
	table  string
	record string
}

// fakeRows replays fixed rows through the pgx.Rows interface.
type fakeRows struct {
	rows   []row
	pos    int
	err    error
	closed bool
}

var _ pgx.Rows = (*fakeRows)(nil)

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, errors.New("not implemented") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	cur := r.rows[r.pos-1]
	*dest[0].(*string) = cur.table
	*dest[1].(*[]byte) = []byte(cur.record)
	return nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
	sql  string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestLoad(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{rows: []row{
		{"events", `{"id":"76186000006678002","capacity":1200}`},
		{"tracks", `{"id":"t1","event":"76186000006678002"}`},
		{"tracks", `[1,2]`},
		{"tracks", `{"id":"t2","event":"76186000006678002"}`},
	}}}

	s, err := Load(context.Background(), q, "conference_records")
	require.NoError(t, err)
	require.True(t, q.rows.closed)
	require.Contains(t, q.sql, `FROM "conference_records" ORDER BY table_name, position`)

	require.Equal(t, []string{"events", "tracks"}, s.TableNames())
	require.Equal(t, 3, s.RecordCount())
	require.Equal(t, "t2", s.Table("tracks")[1]["id"])

	ev := s.Lookup("events", conference.InstanceID, store.DefaultKeyField)
	require.False(t, ev.IsEmpty())
	require.Equal(t, 1200, ev.Int("capacity"))
}

func TestLoad_SanitizesTableName(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{}}

	_, err := Load(context.Background(), q, `records"; DROP TABLE x; --`)
	require.NoError(t, err)
	require.True(t, strings.Contains(q.sql, `"records""; DROP TABLE x; --"`), q.sql)
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, &fakeQuerier{}, "")
	require.Error(t, err)

	_, err = Load(ctx, &fakeQuerier{err: errors.New("connection refused")}, "conference_records")
	require.ErrorContains(t, err, "connection refused")
	require.Equal(t, "DATA001", conference.MapError(err).Code)

	_, err = Load(ctx, &fakeQuerier{rows: &fakeRows{err: errors.New("reset")}}, "conference_records")
	require.ErrorContains(t, err, "reset")
}
