package service

import (
	"context"
	"net/http"
	"testing"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestPageServiceCreate(t *testing.T) {
	store, broadcaster, eventSvc := newTestWorkspace(t)
	svc := NewPageService(store, eventSvc)
	ctx := context.Background()

	res, err := svc.Create(ctx, &dto.CreatePageRequest{Title: "Meeting Notes", ParentId: "3"})
	require.NoError(t, err)

	page, err := svc.Show(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, "Meeting Notes", page.Title)
	assert.Equal(t, "3", *page.ParentId)
	assert.True(t, page.IsPrivate)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, "text", page.Blocks[0].Type)

	event := broadcaster.last(t)
	assert.Equal(t, events.PageCreated, event.Type)
	assert.Equal(t, []string{res.Id}, event.PageIds)

	_, err = svc.Create(ctx, &dto.CreatePageRequest{ParentId: "missing"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestPageServiceUpdate(t *testing.T) {
	store, broadcaster, eventSvc := newTestWorkspace(t)
	svc := NewPageService(store, eventSvc)
	ctx := context.Background()

	tags := []string{"work", " work ", "", "q3"}
	res, err := svc.Update(ctx, &dto.UpdatePageRequest{
		Id:    "4",
		Title: strPtr("Roadmap"),
		Color: strPtr("red"),
		Tags:  &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", res.Title)
	assert.Equal(t, "red", res.Color)
	assert.Equal(t, []string{"work", "q3"}, res.Tags)
	assert.Equal(t, "💡", res.Icon, "fields left nil are unchanged")

	before := broadcaster.count()
	_, err = svc.Update(ctx, &dto.UpdatePageRequest{Id: "4", Color: strPtr("mauve")})
	assertStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, before, broadcaster.count())

	_, err = svc.Update(ctx, &dto.UpdatePageRequest{Id: "missing", Title: strPtr("x")})
	assert.ErrorIs(t, err, apperror.ErrPageNotFound)
}

func TestPageServiceDelete(t *testing.T) {
	store, broadcaster, eventSvc := newTestWorkspace(t)
	svc := NewPageService(store, eventSvc)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "3"))
	for _, id := range []string{"2", "3", "4"} {
		_, err := svc.Show(ctx, id)
		assert.ErrorIs(t, err, apperror.ErrPageNotFound, id)
	}
	assert.ElementsMatch(t, []string{"2", "3", "4"}, broadcaster.last(t).PageIds)

	assert.ErrorIs(t, svc.Delete(ctx, "3"), apperror.ErrPageNotFound)
}

func TestPageServiceMove(t *testing.T) {
	store, _, eventSvc := newTestWorkspace(t)
	svc := NewPageService(store, eventSvc)
	ctx := context.Background()

	res, err := svc.Move(ctx, &dto.MovePageRequest{Id: "4", ParentId: ""})
	require.NoError(t, err)
	assert.Nil(t, res.ParentId)

	_, err = svc.Move(ctx, &dto.MovePageRequest{Id: "3", ParentId: "2"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Move(ctx, &dto.MovePageRequest{Id: "1", ParentId: "missing"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestPageServiceNavigation(t *testing.T) {
	store, broadcaster, eventSvc := newTestWorkspace(t)
	svc := NewPageService(store, eventSvc)
	ctx := context.Background()

	children, err := svc.Children(ctx, "3")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "2", children[0].Id)
	assert.Equal(t, "4", children[1].Id)

	crumbs, err := svc.Breadcrumb(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, []dto.BreadcrumbItem{{Id: "3", Title: "Personal Notes", Icon: "📝"}}, crumbs)

	fav, err := svc.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	assert.False(t, fav.IsFavorite)

	viewed, err := svc.View(ctx, "3")
	require.NoError(t, err)
	assert.NotNil(t, viewed.LastViewedAt)
	assert.Equal(t, events.PageViewed, broadcaster.last(t).Type)

	_, err = svc.Children(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrPageNotFound)
	assert.Len(t, svc.GetFiltered(ctx), 4)
}
