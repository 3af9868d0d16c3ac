package controllers

import (
	"strconv"

	"storerating/pkg/resp"
	"storerating/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminController struct {
	Admin     *services.AdminService
	Directory *services.DirectoryService
	Log       logrus.FieldLogger
}

func NewAdminController(admin *services.AdminService, dir *services.DirectoryService, log logrus.FieldLogger) *AdminController {
	return &AdminController{Admin: admin, Directory: dir, Log: log}
}

// GET /api/admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	st, err := ac.Admin.Stats(c.Request.Context())
	if err != nil {
		resp.Error(c, ac.Log, err)
		return
	}
	resp.OK(c, gin.H{
		"totalUsers":   st.TotalUsers,
		"totalStores":  st.TotalStores,
		"totalRatings": st.TotalRatings,
	})
}

type CreateUserReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user store_owner"`
}

// POST /api/admin/users
func (ac *AdminController) CreateUser(c *gin.Context) {
	var req CreateUserReq
	if !bindJSON(c, ac.Log, &req) {
		return
	}

	user, err := ac.Admin.CreateUser(c.Request.Context(), services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	}, req.Role)
	if err != nil {
		resp.Error(c, ac.Log, err)
		return
	}
	resp.Created(c, gin.H{"message": "User added successfully", "userId": user.ID})
}

type CreateStoreReq struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,loose_email"`
	Address    string `json:"address" binding:"required"`
	OwnerEmail string `json:"ownerEmail" binding:"omitempty,loose_email"`
}

// POST /api/admin/stores
func (ac *AdminController) CreateStore(c *gin.Context) {
	var req CreateStoreReq
	if !bindJSON(c, ac.Log, &req) {
		return
	}

	store, err := ac.Admin.CreateStore(c.Request.Context(), services.StoreInput{
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		resp.Error(c, ac.Log, err)
		return
	}
	resp.Created(c, gin.H{"message": "Store added successfully", "storeId": store.ID})
}

// GET /api/admin/users?name=&email=&address=&role=&sortBy=&sortOrder=
func (ac *AdminController) Users(c *gin.Context) {
	users, err := ac.Directory.ListUsers(c.Request.Context(), services.UserFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Role:    c.Query("role"),
	}, services.ParseUserSort(c.Query("sortBy"), c.Query("sortOrder")))
	if err != nil {
		resp.Error(c, ac.Log, err)
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userJSON(&users[i]))
	}
	resp.OK(c, gin.H{"users": items})
}

// GET /api/admin/stores?name=&email=&address=&sortBy=&sortOrder=
func (ac *AdminController) Stores(c *gin.Context) {
	stores, err := ac.Directory.ListStores(c.Request.Context(), services.StoreFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
	}, services.ParseStoreSort(services.AdminStoreView, c.Query("sortBy"), c.Query("sortOrder")), nil)
	if err != nil {
		resp.Error(c, ac.Log, err)
		return
	}

	items := make([]gin.H, 0, len(stores))
	for _, s := range stores {
		items = append(items, listingJSON(s, false))
	}
	resp.OK(c, gin.H{"stores": items})
}

// GET /api/admin/users/:id
func (ac *AdminController) UserDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "Invalid user ID")
		return
	}

	d, err := ac.Directory.UserDetail(c.Request.Context(), uint(id))
	if err != nil {
		resp.Error(c, ac.Log, err)
		return
	}

	out := userJSON(d.User)
	// rating มีค่าเฉพาะ store_owner ที่มีร้านและมีคนให้คะแนนแล้ว
	out["storeId"] = d.StoreID
	out["rating"] = nil
	out["totalRatings"] = int64(0)
	if d.Aggregate != nil {
		out["rating"] = d.Aggregate.Average
		out["totalRatings"] = d.Aggregate.Total
	}
	resp.OK(c, gin.H{"user": out})
}
