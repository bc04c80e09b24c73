package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanya972/ThreadLife/internal/common"
)

func TestReadCatalog(t *testing.T) {
	csvData := `article_id,product_type_name,product_group_name,graphical_appearance_name,colour_group_name,index_group_name,detail_desc,price
0108775015,T-shirt,Garment Upper body,Solid,White,Ladieswear,100% cotton jersey tee,9.99
0111565001,Jeans,Garment Lower body,Denim,Blue,Divided,"Denim jeans 98% cotton 2% elastane",39.99
0222222002,Sweater,Garment Upper body,Pattern,Gray,Menswear,Wool-blend knit 60% wool 40% poly,
`

	items, err := ReadCatalog(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 3)

	tee := items[0]
	assert.Equal(t, "0108775015", tee.ID)
	assert.Equal(t, "t shirt", tee.Category, "category must be canonicalized")
	assert.Equal(t, "T-shirt", tee.RawCategory)
	assert.Equal(t, "100% cotton jersey tee", tee.Description)
	assert.Equal(t, "Garment Upper body", tee.ProductGroup)
	require.NotNil(t, tee.Price)
	assert.InDelta(t, 9.99, *tee.Price, 1e-9)

	assert.Nil(t, items[2].Price, "empty price cell must stay nil, not zero")
}

func TestReadCatalog_MissingRequiredColumn(t *testing.T) {
	csvData := `article_id,product_type_name,price
1,T-shirt,9.99
`

	_, err := ReadCatalog(strings.NewReader(csvData))
	require.Error(t, err)

	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "catalog", schemaErr.Table)
	assert.Equal(t, "detail_desc", schemaErr.Missing)
	assert.Contains(t, schemaErr.Available, "article_id")
	assert.Contains(t, err.Error(), `missing required column "detail_desc"`)
}

func TestReadCatalog_OptionalColumnsAbsent(t *testing.T) {
	csvData := `article_id,product_type_name,detail_desc
1,Dress,Viscose crepe dress 100% viscose
`

	items, err := ReadCatalog(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].ProductGroup)
	assert.Nil(t, items[0].Price)
}

func TestReadCatalog_DropsRowsWithoutID(t *testing.T) {
	csvData := `article_id,product_type_name,detail_desc
1,Dress,Viscose crepe dress
,Jacket,orphan row
2,Skirt,Linen skirt
`

	items, err := ReadCatalog(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
}

func TestReadCatalog_CaseInsensitiveHeader(t *testing.T) {
	csvData := `Article_ID,Product_Type_Name,Detail_Desc
1,Sock,80% cotton 20% polyamide
`

	items, err := ReadCatalog(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sock", items[0].Category)
}
