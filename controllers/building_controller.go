package controllers

import (
	"leasedesk/dto"
	"leasedesk/response"
	"leasedesk/services"
	"leasedesk/services/listing"

	"github.com/gin-gonic/gin"
)

var buildingListSpec = listing.Spec[dto.BuildingResponse]{
	SearchFields: func(b dto.BuildingResponse) []string { return []string{b.Name, b.Code, b.Address} },
	Sorters: map[string]func(a, b dto.BuildingResponse) int{
		"name":          func(a, b dto.BuildingResponse) int { return listing.CompareStrings(a.Name, b.Name) },
		"code":          func(a, b dto.BuildingResponse) int { return listing.CompareStrings(a.Code, b.Code) },
		"rentableArea":  func(a, b dto.BuildingResponse) int { return listing.CompareNumbers(a.RentableArea, b.RentableArea) },
		"rentedArea":    func(a, b dto.BuildingResponse) int { return listing.CompareNumbers(a.RentedArea, b.RentedArea) },
		"occupancyRate": func(a, b dto.BuildingResponse) int { return listing.CompareNumbers(a.OccupancyRate, b.OccupancyRate) },
		"id":            func(a, b dto.BuildingResponse) int { return listing.CompareNumbers(a.ID, b.ID) },
	},
}

type BuildingController struct {
	buildings *services.BuildingService
	stats     *services.StatsService
	filters   *services.ListStateStore
}

func NewBuildingController(buildings *services.BuildingService, stats *services.StatsService, filters *services.ListStateStore) BuildingController {
	return BuildingController{buildings: buildings, stats: stats, filters: filters}
}

// GetBuildings godoc
// @Summary Danh sách tòa nhà
// @Tags buildings
// @Param search query string false "Từ khóa"
// @Param sort query string false "name,-occupancyRate"
// @Param page query int false "Trang (bắt đầu từ 0)"
// @Success 200 {object} response.Response
// @Router /buildings [get]
func (bc BuildingController) GetBuildings(c *gin.Context) {
	items, err := bc.stats.Buildings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	q := listQuery(c, bc.filters, "buildings")
	respondList(c, listing.Apply(items, buildingListSpec, q))
}

// GetBuildingStats godoc
// @Summary Tỉ lệ lấp đầy theo tòa nhà
// @Tags buildings
// @Success 200 {object} response.Response
// @Router /buildings/stats [get]
func (bc BuildingController) GetBuildingStats(c *gin.Context) {
	stats, err := bc.stats.BuildingStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

func (bc BuildingController) GetBuildingDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := bc.buildings.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, b)
}

// CreateBuilding godoc
// @Summary Tạo tòa nhà
// @Tags buildings
// @Param body body dto.CreateBuildingRequest true "Tòa nhà"
// @Success 201 {object} response.Response
// @Router /buildings [post]
func (bc BuildingController) CreateBuilding(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := bc.buildings.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, b)
}

func (bc BuildingController) UpdateBuilding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := bc.buildings.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, b)
}

func (bc BuildingController) DeleteBuilding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := bc.buildings.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
