package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/service"
)

type createVoteRequest struct {
	Name     string     `json:"name"`
	Date     *time.Time `json:"date"`
	Count    *int       `json:"count"`
	Finished *bool      `json:"finished"`
}

func (a *API) CreateVote(c *gin.Context) {
	var req createVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	vote, err := a.Votes.Create(c.Request.Context(), service.CreateVoteInput{
		Name:     req.Name,
		Date:     req.Date,
		Count:    req.Count,
		Finished: req.Finished,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "Vote created successfully", vote)
}

func (a *API) GetVotes(c *gin.Context) {
	filter := query.NormalizeVoteFilter(c.Request.URL.Query())
	votes, err := a.Votes.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Votes fetched successfully", votes)
}

func (a *API) GetVote(c *gin.Context) {
	id, ok := parseID(c, "vote")
	if !ok {
		return
	}
	vote, err := a.Votes.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Vote fetched successfully", vote)
}

type updateVoteRequest struct {
	Name     *string    `json:"name"`
	Date     *time.Time `json:"date"`
	Count    *int       `json:"count"`
	Finished *bool      `json:"finished"`
}

func (a *API) UpdateVote(c *gin.Context) {
	id, ok := parseID(c, "vote")
	if !ok {
		return
	}
	var req updateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	affected, err := a.Votes.Update(c.Request.Context(), id, service.UpdateVoteInput{
		Name:     req.Name,
		Date:     req.Date,
		Count:    req.Count,
		Finished: req.Finished,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Vote updated successfully", affected)
}

func (a *API) DeleteVote(c *gin.Context) {
	id, ok := parseID(c, "vote")
	if !ok {
		return
	}
	affected, err := a.Votes.Delete(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Vote deleted successfully", affected)
}
