package user

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
	router.HandleFunc("/user/signup", h.Signup).Methods("POST")
	router.HandleFunc("/user/login", h.Login).Methods("POST")
	router.HandleFunc("/user/refresh", h.Refresh).Methods("POST")
	router.HandleFunc("/user/logout/{userId}", utils.AuthMiddleware(h.Logout)).Methods("POST")
	router.HandleFunc("/user/withdraw/{userId}", utils.AuthMiddleware(h.Withdraw)).Methods("DELETE")
	router.HandleFunc("/profile/{userId}", utils.AuthMiddleware(h.GetProfile)).Methods("GET")
	router.HandleFunc("/profile/{userId}", utils.AuthMiddleware(h.EditProfile)).Methods("PUT")
}

func userID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		return 0, utils.BadRequest("올바르지 않은 사용자 ID입니다.")
	}
	return uint(id), nil
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.Signup(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "회원가입이 완료되었습니다!", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto AuthReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.Login(&dto)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "로그인이 완료되었습니다!", res)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}

	res, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "토큰이 재발급되었습니다!", res)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	caller, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto AuthReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}

	if err := h.service.Withdraw(id, &dto, caller); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "회원탈퇴가 완료되었습니다!", nil)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	caller, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.service.Logout(id, caller); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "로그아웃이 완료되었습니다!", nil)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.GetProfile(id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "프로필 조회가 완료되었습니다!", res)
}

func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	caller, err := utils.CurrentUser(h.db, r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto UpdateReqDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, utils.BadRequest("요청 본문이 올바르지 않습니다."))
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.service.EditProfile(id, &dto, caller)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, "프로필 수정이 완료되었습니다!", res)
}
