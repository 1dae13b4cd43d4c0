package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPost_Path(t *testing.T) {
	p := &Post{Slug: "hello-go", Publish: time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)}

	assert.Equal(t, "/api/v1/blog/posts/2024/3/5/hello-go", p.Path(time.UTC))

	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "/api/v1/blog/posts/2024/3/6/hello-go", p.Path(tokyo))
}

func TestPost_TagIDs(t *testing.T) {
	p := &Post{Tags: []Tag{{ID: 3}, {ID: 7}}}
	assert.Equal(t, []uint{3, 7}, p.TagIDs())
	assert.Empty(t, (&Post{}).TagIDs())
}

func TestPost_BeforeSave(t *testing.T) {
	p := &Post{Publish: time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("JST", 9*3600))}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "2024-03-05", p.PublishDay)

	p = &Post{Publish: time.Now(), PublishDay: "2020-01-01"}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "2020-01-01", p.PublishDay, "已设置的值不被覆盖")
}
