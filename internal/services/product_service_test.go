// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
	"github.com/petbao/petbao-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	products *ProductService
	seller   *models.User
	other    *models.User
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.products = NewProductService(suite.db)
	suite.seller = createTestUser(suite.T(), suite.db, "seller")
	suite.other = createTestUser(suite.T(), suite.db, "other")
}

func (suite *ProductServiceTestSuite) TestCreateProductWithMedia() {
	product, err := suite.products.CreateProduct(suite.seller.ID, &CreateProductRequest{
		Title:       "Banana Ball Python",
		Description: "2023 male, feeding on frozen thawed",
		Species:     "ball python",
		Morph:       "banana",
		Sex:         models.ProductSexMale,
		Price:       1200,
		Images:      []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		Videos:      []string{"https://cdn.example.com/a.mp4"},
	})
	suite.NoError(err)
	suite.Equal(models.ProductStatusAvailable, product.Status)
	suite.Equal(suite.seller.ID, product.SellerID)
	suite.Len(product.Images, 2)
	suite.Len(product.Videos, 1)
	suite.Equal(0, product.Images[0].SortOrder)
	suite.Equal("https://cdn.example.com/a.jpg", product.Images[0].ImageURL)
	suite.Equal(1, product.Images[1].SortOrder)
}

func (suite *ProductServiceTestSuite) TestCreateProductValidation() {
	_, err := suite.products.CreateProduct(suite.seller.ID, &CreateProductRequest{
		Title: "x",
		Price: 10,
	})
	suite.Error(err)

	_, err = suite.products.CreateProduct(suite.seller.ID, &CreateProductRequest{
		Title:       "Valid Title",
		Description: "desc",
		Species:     "gecko",
		Price:       10,
		Images:      []string{"not-a-url"},
	})
	suite.Error(err)
}

func (suite *ProductServiceTestSuite) TestGetProductBumpsViewCount() {
	product := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Leopard Gecko", 80, models.ProductStatusAvailable)

	first, err := suite.products.GetProduct(product.ID)
	suite.NoError(err)
	suite.Equal(int64(1), first.ViewCount)

	second, err := suite.products.GetProduct(product.ID)
	suite.NoError(err)
	suite.Equal(int64(2), second.ViewCount)
}

func (suite *ProductServiceTestSuite) TestGetProductNotFound() {
	_, err := suite.products.GetProduct(uuid.New())
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestUpdateProductOwnerOnly() {
	product := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Corn Snake", 60, models.ProductStatusAvailable)

	_, err := suite.products.UpdateProduct(product.ID, suite.other.ID, &UpdateProductRequest{Title: "Hijacked"})
	suite.ErrorIs(err, ErrForbidden)

	updated, err := suite.products.UpdateProduct(product.ID, suite.seller.ID, &UpdateProductRequest{
		Title: "Okeetee Corn Snake",
		Price: 75,
	})
	suite.NoError(err)
	suite.Equal("Okeetee Corn Snake", updated.Title)
	suite.Equal(75.0, updated.Price)
	// untouched fields keep their values
	suite.Equal("ball python", updated.Species)
}

func (suite *ProductServiceTestSuite) TestDeleteProductDetachesOrders() {
	product := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Hognose", 150, models.ProductStatusAvailable)
	suite.Require().NoError(suite.db.Create(&models.ProductImage{ProductID: product.ID, ImageURL: "https://cdn.example.com/h.jpg"}).Error)

	orders := NewOrderService(suite.db, newTestPaymentService())
	buyer := createTestUser(suite.T(), suite.db, "buyer")
	order := createTestOrder(suite.T(), suite.db, orders, buyer.ID, product.ID)

	suite.ErrorIs(suite.products.DeleteProduct(product.ID, suite.other.ID), ErrForbidden)
	suite.NoError(suite.products.DeleteProduct(product.ID, suite.seller.ID))

	_, err := suite.products.GetProduct(product.ID)
	suite.ErrorIs(err, ErrNotFound)

	var imageCount int64
	suite.Require().NoError(suite.db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount).Error)
	suite.Equal(int64(0), imageCount)

	// the order survives with its snapshot, minus the product reference
	reloaded, err := orders.GetOrder(order.ID, buyer.ID)
	suite.NoError(err)
	suite.Nil(reloaded.ProductID)
	suite.Equal(150.0, reloaded.TotalAmount)
}

func (suite *ProductServiceTestSuite) TestSearchDefaultsToAvailable() {
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Available Python", 100, models.ProductStatusAvailable)
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Sold Python", 100, models.ProductStatusSold)
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Offline Python", 100, models.ProductStatusOffline)

	results, total, err := suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
	})
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Available Python", results[0].Title)

	sold := models.ProductStatusSold
	results, total, err = suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		Status:           &sold,
	})
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Sold Python", results[0].Title)
}

func (suite *ProductServiceTestSuite) TestSearchFilters() {
	cheap := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Cheap Gecko", 20, models.ProductStatusAvailable)
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Pricey Python", 500, models.ProductStatusAvailable)

	min, max := 10.0, 50.0
	results, total, err := suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		MinPrice:         &min,
		MaxPrice:         &max,
	})
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(cheap.ID, results[0].ID)

	// substring search over title, case insensitive
	results, total, err = suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: "pricey"},
	})
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Pricey Python", results[0].Title)

	// species filter is a substring match too
	results, total, err = suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		Species:          "BALL",
	})
	suite.NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(results, 2)
}

func (suite *ProductServiceTestSuite) TestGetSellerProductsIncludesAllStatuses() {
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Available", 10, models.ProductStatusAvailable)
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Offline", 10, models.ProductStatusOffline)
	createTestProduct(suite.T(), suite.db, suite.seller.ID, "Sold", 10, models.ProductStatusSold)
	createTestProduct(suite.T(), suite.db, suite.other.ID, "Not Mine", 10, models.ProductStatusAvailable)

	_, total, err := suite.products.GetSellerProducts(suite.seller.ID, utils.PaginationParams{Page: 1, Limit: 20})
	suite.NoError(err)
	suite.Equal(int64(3), total)
}

func (suite *ProductServiceTestSuite) TestToggleStatus() {
	product := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Toggler", 10, models.ProductStatusAvailable)

	_, err := suite.products.ToggleStatus(product.ID, suite.other.ID)
	suite.ErrorIs(err, ErrForbidden)

	toggled, err := suite.products.ToggleStatus(product.ID, suite.seller.ID)
	suite.NoError(err)
	suite.Equal(models.ProductStatusOffline, toggled.Status)

	toggled, err = suite.products.ToggleStatus(product.ID, suite.seller.ID)
	suite.NoError(err)
	suite.Equal(models.ProductStatusAvailable, toggled.Status)
}

func (suite *ProductServiceTestSuite) TestToggleStatusRejectsOrderOwnedStates() {
	reserved := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Reserved", 10, models.ProductStatusReserved)
	sold := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Sold", 10, models.ProductStatusSold)

	_, err := suite.products.ToggleStatus(reserved.ID, suite.seller.ID)
	suite.ErrorIs(err, ErrInvalidState)

	_, err = suite.products.ToggleStatus(sold.ID, suite.seller.ID)
	suite.ErrorIs(err, ErrInvalidState)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
