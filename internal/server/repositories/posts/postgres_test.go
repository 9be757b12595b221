package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ    = `(?s)^\s*INSERT\s+INTO\s+posts\s*\(title,\s*content,\s*author_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	byIDQ      = `(?s)SELECT\s+p\.id,.*FROM\s+posts\s+p\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.author_id\s+WHERE\s+p\.id\s*=\s*\$1\s*$`
	forUpdateQ = `(?s)SELECT\s+p\.id,.*FROM\s+posts\s+p\s+JOIN\s+users.*WHERE\s+p\.id\s*=\s*\$1\s+FOR\s+UPDATE\s+OF\s+p\s*$`
	listQ      = `(?s)SELECT\s+p\.id,.*FROM\s+posts\s+p\s+JOIN\s+users.*ORDER\s+BY\s+p\.created_at\s+DESC,\s*p\.id\s+DESC\s*$`
	updateQ    = `(?s)^\s*UPDATE\s+posts\s+SET\s+title\s*=\s*\$2,\s*content\s*=\s*\$3,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s*$`
	setImageQ  = `^UPDATE posts SET image_key = \$2, updated_at = now\(\) WHERE id = \$1$`
	deleteQ    = `^DELETE FROM posts WHERE id = \$1$`
)

var postCols = []string{"id", "title", "content", "author_id", "name", "email", "image_key", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQ).
		WithArgs("Hello", "World", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("p-1", now, now))

	got, err := repo.Create(context.Background(), &models.Post{Title: "Hello", Content: "World", AuthorID: "u-1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "p-1" || !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected post: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UnknownAuthor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("Hello", "World", "gone").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), &models.Post{Title: "Hello", Content: "World", AuthorID: "gone"})
	if !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("want common.ErrUserNotFound, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WithArgs("T", "C", "u").WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Post{Title: "T", Content: "C", AuthorID: "u"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_PopulatesAuthor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(byIDQ).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p-1", "Hello", "World", "u-1", "Alice", "alice@example.com", "", now, now))

	got, err := repo.GetByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	want := models.Author{ID: "u-1", Name: "Alice", Email: "alice@example.com"}
	if got.Author != want || got.AuthorID != "u-1" || got.Title != "Hello" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestGetByID_NotFoundAndError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQ).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(byIDQ).WithArgs("p-2").WillReturnError(errors.New("db err"))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "p-2"); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByIDForUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(forUpdateQ).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p-1", "Hello", "World", "u-1", "Alice", "alice@example.com", "k", now, now))

	got, err := repo.GetByIDForUpdate(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByIDForUpdate error: %v", err)
	}
	if got.ImageKey != "k" {
		t.Fatalf("unexpected post: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	t1 := time.Now()
	t0 := t1.Add(-time.Hour)
	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p-2", "Newer", "b", "u-1", "Alice", "a@x.com", "", t1, t1).
			AddRow("p-1", "Older", "a", "u-2", "Bob", "b@x.com", "img", t0, t0))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p-2" || got[1].Author.Name != "Bob" {
		t.Fatalf("unexpected posts: %+v", got)
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows(postCols))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestList_Errors(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WillReturnError(errors.New("db err"))
	if _, err := repo.List(context.Background()); err == nil || !regexp.MustCompile(`failed to select posts: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped select error, got %v", err)
	}

	now := time.Now()
	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p-1", "T", "C", "u-1", "A", "a@x.com", "", now, now).
			AddRow("p-2", "T", "C", "u-1", "A", "a@x.com", "", now, now).
			RowError(1, errors.New("row-err")))
	if _, err := repo.List(context.Background()); err == nil || err.Error() != "row-err" {
		t.Fatalf("expected rows.Err 'row-err', got %v", err)
	}

	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p-1", "T", "C", "u-1", "A", "a@x.com", "", "not-a-time", now))
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).WithArgs("p-1", "T", "C").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQ).WithArgs("p-2", "T", "C").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(updateQ).WithArgs("p-3", "T", "C").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(updateQ).WithArgs("p-4", "T", "C").WillReturnResult(sqlmock.NewErrorResult(errors.New("ra")))
	mock.ExpectExec(updateQ).WithArgs("p-5", "T", "C").WillReturnError(errors.New("db err"))

	ctx := context.Background()
	if err := repo.Update(ctx, &models.Post{ID: "p-1", Title: "T", Content: "C"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Update(ctx, &models.Post{ID: "p-2", Title: "T", Content: "C"}); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := repo.Update(ctx, &models.Post{ID: "p-3", Title: "T", Content: "C"}); err == nil || !regexp.MustCompile(`unexpected rows affected: 2`).MatchString(err.Error()) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
	if err := repo.Update(ctx, &models.Post{ID: "p-4", Title: "T", Content: "C"}); err == nil || !regexp.MustCompile(`rows affected error: ra`).MatchString(err.Error()) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
	if err := repo.Update(ctx, &models.Post{ID: "p-5", Title: "T", Content: "C"}); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSetImageKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(setImageQ).WithArgs("p-1", "posts/p-1/cover").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(setImageQ).WithArgs("p-2", "k").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(setImageQ).WithArgs("p-3", "k").WillReturnError(errors.New("db err"))

	ctx := context.Background()
	if err := repo.SetImageKey(ctx, "p-1", "posts/p-1/cover"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SetImageKey(ctx, "p-2", "k"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := repo.SetImageKey(ctx, "p-3", "k"); err == nil || !regexp.MustCompile(`failed to set image key: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs("p-2").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "p-2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
