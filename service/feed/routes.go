package feed

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/spartaclub/newsfeed-server/cmd/utils"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Handler struct {
	db      *gorm.DB
	service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, service: NewService(db)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/feeds", utils.AuthMiddleware(h.CreateFeed)).Methods("POST")
	router.HandleFunc("/feeds/all", h.GetAllFeeds).Methods("GET")
	router.HandleFunc("/feeds/{feedId}", h.GetFeed).Methods("GET")
	router.HandleFunc("/feeds/{feedId}", utils.AuthMiddleware(h.UpdateFeed)).Methods("PUT")
	router.HandleFunc("/feeds/{feedId}", utils.AuthMiddleware(h.DeleteFeed)).Methods("DELETE")
	router.HandleFunc("/feeds/{feedId}/like", utils.AuthMiddleware(h.LikeFeed)).Methods("POST")
	router.HandleFunc("/feeds/{feedId}/unlike", utils.AuthMiddleware(h.UnlikeFeed)).Methods("POST")
}

func feedID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["feedId"], 10, 64)
	if err != nil {
		return 0, utils.BadRequest("올바르지 않은 게시물 ID입니다.")
	}
	return uint(id), nil
}

func (h *Handler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto FeedReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.CreateFeed(&dto, user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 작성이 완료되었습니다!", res)
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	id, err := feedID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.GetFeed(id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 조회가 완료되었습니다!", res)
}

func (h *Handler) GetAllFeeds(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	sortBy := r.URL.Query().Get("sortBy")

	var startDate, endDate *time.Time
	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			utils.WriteError(w, utils.BadRequest("날짜 형식이 올바르지 않습니다."))
			return
		}
		startDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			utils.WriteError(w, utils.BadRequest("날짜 형식이 올바르지 않습니다."))
			return
		}
		endDate = &t
	}

	res, err := h.service.GetAllFeeds(page, sortBy, startDate, endDate)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 조회가 완료되었습니다!", res)
}

func (h *Handler) UpdateFeed(w http.ResponseWriter, r *http.Request) {
	id, err := feedID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto FeedReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.UpdateFeed(id, &dto, user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 수정이 완료되었습니다!", res)
}

func (h *Handler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	id, err := feedID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.DeleteFeed(id, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 삭제가 완료되었습니다!", nil)
}

func (h *Handler) LikeFeed(w http.ResponseWriter, r *http.Request) {
	id, err := feedID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.LikeFeed(id, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 좋아요가 완료되었습니다!", nil)
}

func (h *Handler) UnlikeFeed(w http.ResponseWriter, r *http.Request) {
	id, err := feedID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.UnlikeFeed(id, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "게시물 좋아요가 취소되었습니다!", nil)
}
