package comment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/spartaclub/newsfeed-server/cmd/utils"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, service: NewService(db)}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/feeds/{feedId}/comments", utils.AuthMiddleware(h.CreateComment)).Methods("POST")
	router.HandleFunc("/feeds/{feedId}/comments", h.GetAllComments).Methods("GET")
	router.HandleFunc("/feeds/{feedId}/comments/{commentId}", h.GetComment).Methods("GET")
	router.HandleFunc("/feeds/{feedId}/comments/{commentId}", utils.AuthMiddleware(h.UpdateComment)).Methods("PUT")
	router.HandleFunc("/feeds/{feedId}/comments/{commentId}", utils.AuthMiddleware(h.DeleteComment)).Methods("DELETE")
	router.HandleFunc("/feeds/{feedId}/comments/{commentId}/like", utils.AuthMiddleware(h.LikeComment)).Methods("POST")
	router.HandleFunc("/feeds/{feedId}/comments/{commentId}/unlike", utils.AuthMiddleware(h.UnlikeComment)).Methods("POST")
}

func pathIDs(r *http.Request) (uint, uint, error) {
	vars := mux.Vars(r)
	feedID, err := strconv.ParseUint(vars["feedId"], 10, 64)
	if err != nil {
		return 0, 0, utils.BadRequest("올바르지 않은 게시물 ID입니다.")
	}
	commentID, err := strconv.ParseUint(vars["commentId"], 10, 64)
	if err != nil {
		return 0, 0, utils.BadRequest("올바르지 않은 댓글 ID입니다.")
	}
	return uint(feedID), uint(commentID), nil
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	feedID, err := strconv.ParseUint(mux.Vars(r)["feedId"], 10, 64)
	if err != nil {
		utils.WriteError(w, utils.BadRequest("올바르지 않은 게시물 ID입니다."))
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto CommentReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.CreateComment(uint(feedID), &dto, user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 작성이 완료되었습니다!", res)
}

func (h *Handler) GetAllComments(w http.ResponseWriter, r *http.Request) {
	feedID, err := strconv.ParseUint(mux.Vars(r)["feedId"], 10, 64)
	if err != nil {
		utils.WriteError(w, utils.BadRequest("올바르지 않은 게시물 ID입니다."))
		return
	}

	res, err := h.service.GetAllComments(uint(feedID))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 조회가 완료되었습니다!", res)
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	feedID, commentID, err := pathIDs(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.GetComment(feedID, commentID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 조회가 완료되었습니다!", res)
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	feedID, commentID, err := pathIDs(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto CommentReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.UpdateComment(feedID, commentID, &dto, user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 수정이 완료되었습니다!", res)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	feedID, commentID, err := pathIDs(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.DeleteComment(feedID, commentID, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 삭제가 완료되었습니다!", nil)
}

func (h *Handler) LikeComment(w http.ResponseWriter, r *http.Request) {
	feedID, commentID, err := pathIDs(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.LikeComment(feedID, commentID, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 좋아요가 완료되었습니다!", nil)
}

func (h *Handler) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	feedID, commentID, err := pathIDs(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	user, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.UnlikeComment(feedID, commentID, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "댓글 좋아요가 취소되었습니다!", nil)
}
