// internal/services/taxonomy_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
)

type TaxonomyServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	taxonomy *TaxonomyService
	reptiles *models.ProductCategory
	python   *models.Species
}

func (suite *TaxonomyServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.taxonomy = NewTaxonomyService(suite.db)

	suite.reptiles = &models.ProductCategory{Name: "爬行类", SortOrder: 1, IsActive: true}
	suite.Require().NoError(suite.db.Create(suite.reptiles).Error)
	hidden := &models.ProductCategory{Name: "已下架分类", SortOrder: 2, IsActive: false}
	suite.Require().NoError(suite.db.Create(hidden).Error)

	suite.python = &models.Species{Name: "球蟒", CategoryID: &suite.reptiles.ID, SortOrder: 1, IsActive: true}
	suite.Require().NoError(suite.db.Create(suite.python).Error)
	gecko := &models.Species{Name: "豹纹守宫", CategoryID: &suite.reptiles.ID, SortOrder: 2, IsActive: true}
	suite.Require().NoError(suite.db.Create(gecko).Error)
	suite.Require().NoError(suite.db.Create(&models.Species{Name: "停用物种", IsActive: false}).Error)

	suite.Require().NoError(suite.db.Create(&models.GeneTag{Name: "Banana", SpeciesID: &suite.python.ID, SortOrder: 1, IsActive: true}).Error)
	suite.Require().NoError(suite.db.Create(&models.GeneTag{Name: "Pastel", SpeciesID: &suite.python.ID, SortOrder: 2, IsActive: true}).Error)
	suite.Require().NoError(suite.db.Create(&models.GeneTag{Name: "Retired", SpeciesID: &suite.python.ID, IsActive: false}).Error)
}

func (suite *TaxonomyServiceTestSuite) TestListCategoriesActiveOnly() {
	categories, err := suite.taxonomy.ListCategories()
	suite.NoError(err)
	suite.Require().Len(categories, 1)
	suite.Equal("爬行类", categories[0].Name)
}

func (suite *TaxonomyServiceTestSuite) TestListSpecies() {
	species, err := suite.taxonomy.ListSpecies(nil, "")
	suite.NoError(err)
	suite.Len(species, 2)

	species, err = suite.taxonomy.ListSpecies(&suite.reptiles.ID, "")
	suite.NoError(err)
	suite.Require().Len(species, 2)
	// ordered by sort_order
	suite.Equal("球蟒", species[0].Name)

	species, err = suite.taxonomy.ListSpecies(nil, "守宫")
	suite.NoError(err)
	suite.Require().Len(species, 1)
	suite.Equal("豹纹守宫", species[0].Name)
}

func (suite *TaxonomyServiceTestSuite) TestListGeneTags() {
	tags, err := suite.taxonomy.ListGeneTags(&suite.python.ID, "")
	suite.NoError(err)
	suite.Require().Len(tags, 2)
	suite.Equal("Banana", tags[0].Name)

	tags, err = suite.taxonomy.ListGeneTags(&suite.python.ID, "pas")
	suite.NoError(err)
	suite.Require().Len(tags, 1)
	suite.Equal("Pastel", tags[0].Name)
}

func TestTaxonomyServiceSuite(t *testing.T) {
	suite.Run(t, new(TaxonomyServiceTestSuite))
}
