package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/service"
)

// API bundles the services behind the HTTP handlers.
type API struct {
	Posts *service.PostService
	Users *service.UserService
	Votes *service.VoteService
	Chat  *service.ChatService
}

func parseID(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, "Invalid "+what+" id")
		return 0, false
	}
	return uint(id), true
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a *API) CreatePost(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	post, err := a.Posts.Create(c.Request.Context(), claims.Subject, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "Post created successfully", post)
}

func (a *API) GetPosts(c *gin.Context) {
	filter := query.NormalizePostFilter(c.Request.URL.Query())
	page, err := a.Posts.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Posts fetched successfully", page)
}

func (a *API) GetPost(c *gin.Context) {
	id, ok := parseID(c, "post")
	if !ok {
		return
	}
	post, err := a.Posts.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Post fetched successfully", post)
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (a *API) UpdatePost(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseID(c, "post")
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	affected, err := a.Posts.Update(c.Request.Context(), id, claims.Subject, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Post updated successfully", affected)
}

func (a *API) DeletePost(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseID(c, "post")
	if !ok {
		return
	}
	affected, err := a.Posts.Delete(c.Request.Context(), id, claims.Subject, claims.Role.IsAdmin())
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Post deleted successfully", affected)
}
