package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/paylens/paylens/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Index Already Exists", "index already exists", true},
		{"UNKNOWN INDEX NAME", "unknown index name", true},
		{"hello world", "world", true},
		{"short", "longer than input", false},
		{"exact", "exact", true},
		{"", "", true},
		{"notempty", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

// --- hash.go tests ---

func TestHSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "paylens:record:abc"
		})).
		Return(mock.Result(mock.RedisInt64(5)))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "paylens:record:abc", map[string]string{"job_title": "engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(5)),
			mock.Result(mock.RedisInt64(5)),
		})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "paylens:record:a", Fields: map[string]string{"job_title": "engineer"}},
		{Key: "paylens:record:b", Fields: map[string]string{"job_title": "analyst"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c)
	if err := s.HSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(5)),
			mock.ErrorResult(errors.New("OOM")),
		})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "paylens:record:a", Fields: map[string]string{"f": "v"}},
		{Key: "paylens:record:b", Fields: map[string]string{"f": "v"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpHSet {
		t.Errorf("expected db.Error with op HSET, got %v", err)
	}
}

// --- index.go tests ---

func recordIndex() *db.IndexDefinition {
	return db.NewIndex("paylens:records:idx").
		Prefix("paylens:record:").
		Text("job_title").
		Text("city_state").
		Numeric("salary").
		Tag("pay_unit").
		Numeric("salary_yearly").
		MustBuild()
}

func TestCreateIndex_Args(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.CREATE", "paylens:records:idx",
			"ON", "HASH",
			"PREFIX", "1", "paylens:record:",
			"SCHEMA",
			"job_title", "TEXT",
			"city_state", "TEXT",
			"salary", "NUMERIC",
			"pay_unit", "TAG",
			"salary_yearly", "NUMERIC",
		)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.CreateIndex(context.Background(), recordIndex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	err := s.CreateIndex(context.Background(), recordIndex())
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "paylens:records:idx")).
		Return(mock.Result(mock.RedisError("Unknown index name")))

	s := NewStoreForTest(c)
	exists, err := s.IndexExists(context.Background(), "paylens:records:idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected index to be absent")
	}
}

// --- search.go tests ---

func TestSearchCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "paylens:records:idx", "@job_title:(software engineer)",
			"LIMIT", "0", "0", "DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(42))))

	s := NewStoreForTest(c)
	n, err := s.SearchCount(context.Background(), "paylens:records:idx", "@job_title:(software engineer)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count = %d, want 42", n)
	}
}

func TestSearchCount_NoSuchIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisError("paylens:records:idx: no such index")))

	s := NewStoreForTest(c)
	_, err := s.SearchCount(context.Background(), "paylens:records:idx", "*")
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("error = %v, want ErrIndexNotFound", err)
	}
}

func TestSearchList(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[2] == "*"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisString("paylens:record:abc"),
			mock.RedisArray(
				mock.RedisString("job_title"), mock.RedisString("engineer"),
				mock.RedisString("salary"), mock.RedisString("95000"),
			),
		)))

	s := NewStoreForTest(c)
	res, err := s.SearchList(context.Background(), "paylens:records:idx", "*", 0, 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1 || len(res.Entries) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entries[0].Key != "paylens:record:abc" {
		t.Errorf("key = %q", res.Entries[0].Key)
	}
	if res.Entries[0].Fields["job_title"] != "engineer" {
		t.Errorf("fields = %v", res.Entries[0].Fields)
	}
}

func TestAggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.AGGREGATE", "paylens:records:idx", "@job_title:(director)",
			"GROUPBY", "0",
			"REDUCE", "COUNT", "0", "AS", "count",
			"REDUCE", "MIN", "1", "@salary_yearly", "AS", "min",
			"REDUCE", "MAX", "1", "@salary_yearly", "AS", "max",
			"REDUCE", "AVG", "1", "@salary_yearly", "AS", "mean",
			"DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisArray(
				mock.RedisString("count"), mock.RedisString("3"),
				mock.RedisString("min"), mock.RedisString("40000"),
				mock.RedisString("max"), mock.RedisString("80000"),
				mock.RedisString("mean"), mock.RedisString("60000"),
			),
		)))

	s := NewStoreForTest(c)
	sum, err := s.Aggregate(context.Background(), &db.AggregateQuery{
		IndexName: "paylens:records:idx",
		Query:     "@job_title:(director)",
		Field:     "salary_yearly",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Count != 3 || sum.Min != 40000 || sum.Max != 80000 || sum.Mean != 60000 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestAggregate_NoMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisArray(
				mock.RedisString("count"), mock.RedisString("0"),
			),
		)))

	s := NewStoreForTest(c)
	sum, err := s.Aggregate(context.Background(), &db.AggregateQuery{
		IndexName: "paylens:records:idx",
		Query:     "@job_title:(nomatch)",
		Field:     "salary_yearly",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Count != 0 {
		t.Errorf("count = %d, want 0", sum.Count)
	}
}

func TestAggregate_MissingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c)
	if _, err := s.Aggregate(context.Background(), &db.AggregateQuery{IndexName: "idx"}); err == nil {
		t.Fatal("expected error for missing aggregate field")
	}
}
