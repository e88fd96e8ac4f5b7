package catalog

import "github.com/MorseWayne/lens_store/internal/domain"

// seedProducts 为编译期内置的商品数据
// 目录是构建期常量协作者：不从文件或远端加载，上新走代码变更
var seedProducts = []domain.Product{
	{
		ID:          1,
		Name:        "Classic Round Two-Tone",
		Price:       485.00,
		Image:       "images/product_01.png",
		ColorCount:  7,
		Category:    domain.ProductCategoryEyewear,
		Collection:  "Heritage",
		Badge:       "New Release",
		Description: "Handcrafted round-frame eyeglasses featuring a distinctive two-tone acetate design. The upper frame transitions from rich brown to golden amber, showcasing traditional Japanese craftsmanship.",
		Type:        "Eyeglasses",
		Material:    "Cellulose Acetate",
		Sizes:       []string{"50mm", "52mm", "54mm", "56mm"},
		Colors:      []string{"Brown/Amber", "Tortoise", "Black", "Navy", "Gray", "Beige", "Gold"},
		Details: &domain.ProductDetails{
			Frame: "Two-tone acetate round frame",
			Lens:  "Prescription-ready, anti-reflective coating available",
		},
	},
	{
		ID:          2,
		Name:        "Octagonal Blue Acetate",
		Price:       525.00,
		Image:       "images/product_02.png",
		ColorCount:  2,
		Category:    domain.ProductCategoryEyewear,
		Collection:  "Premium",
		Description: "Artisan-crafted octagonal frames in deep blue acetate with precision-cut angles. Features hand-polished surfaces and titanium temples for durability and comfort.",
		Type:        "Eyeglasses",
		Material:    "Cellulose Acetate",
		Sizes:       []string{"52mm", "54mm", "56mm"},
		Colors:      []string{"Navy Blue", "Deep Blue"},
		Details: &domain.ProductDetails{
			Frame: "Octagonal acetate frame with titanium temples",
			Lens:  "Prescription-ready, blue light filtering available",
		},
	},
	{
		ID:          3,
		Name:        "Aviator Heritage Gold",
		Price:       595.00,
		Image:       "images/product_03.png",
		ColorCount:  3,
		Category:    domain.ProductCategoryEyewear,
		Collection:  "Heritage",
		Description: "Luxury aviator-style frames crafted from premium stainless steel with a hand-applied gold accent bar. Each pair is individually finished by master craftsmen in Japan.",
		Type:        "Eyeglasses",
		Material:    "Stainless Steel",
		Sizes:       []string{"54mm", "56mm", "58mm"},
		Colors:      []string{"Gold/Silver", "Rose Gold", "Gunmetal"},
		Details: &domain.ProductDetails{
			Frame: "Stainless steel aviator with gold accent bar",
			Lens:  "Prescription-ready, polarized lens option available",
		},
	},
	{
		ID:          4,
		Name:        "Double Bridge Aviator",
		Price:       650.00,
		Image:       "images/product_04.png",
		ColorCount:  2,
		Category:    domain.ProductCategoryEyewear,
		Collection:  "Premium",
		Description: "Exclusive double-bridge aviator design handcrafted from titanium. Features a distinctive dual-bridge structure that showcases exceptional attention to detail and Japanese precision engineering.",
		Type:        "Eyeglasses",
		Material:    "Titanium",
		Sizes:       []string{"52mm", "54mm", "56mm"},
		Colors:      []string{"Silver", "Gunmetal"},
		Details: &domain.ProductDetails{
			Frame: "Titanium double-bridge aviator frame",
			Lens:  "Prescription-ready, premium anti-reflective coating",
		},
	},
	{
		ID:          5,
		Name:        "Classic Aviator Sunglasses",
		Price:       425.00,
		Image:       "images/product_05.png",
		ColorCount:  3,
		Category:    domain.ProductCategorySunglasses,
		Collection:  "Heritage",
		Description: "Timeless aviator-style sunglasses featuring polarized lenses and premium metal frames. Perfect for everyday wear with UV protection and scratch-resistant coating.",
		Type:        "Sunglasses",
		Material:    "Stainless Steel",
		Sizes:       []string{"54mm", "56mm", "58mm"},
		Colors:      []string{"Gold", "Silver", "Black"},
		Details: &domain.ProductDetails{
			Frame: "Metal aviator frame",
			Lens:  "Polarized lenses, UV400 protection",
		},
	},
	{
		ID:          6,
		Name:        "Round Frame Sunglasses",
		Price:       485.00,
		Image:       "images/product_06.png",
		ColorCount:  2,
		Category:    domain.ProductCategorySunglasses,
		Collection:  "Premium",
		Description: "Handcrafted round-frame sunglasses with vintage-inspired design. Features premium acetate frames and gradient lenses for classic style with modern protection.",
		Type:        "Sunglasses",
		Material:    "Cellulose Acetate",
		Sizes:       []string{"52mm", "54mm", "56mm"},
		Colors:      []string{"Tortoise", "Black"},
		Details: &domain.ProductDetails{
			Frame: "Acetate round frame",
			Lens:  "Gradient polarized lenses, UV400 protection",
		},
	},
	{
		ID:          7,
		Name:        "Cat-Eye Sunglasses",
		Price:       455.00,
		Image:       "images/product_07.png",
		ColorCount:  4,
		Category:    domain.ProductCategorySunglasses,
		Collection:  "Essential",
		Description: "Elegant cat-eye sunglasses with sophisticated design. Crafted from premium acetate with hand-applied detailing for a refined, timeless look.",
		Type:        "Sunglasses",
		Material:    "Cellulose Acetate",
		Sizes:       []string{"50mm", "52mm", "54mm"},
		Colors:      []string{"Black", "Tortoise", "Navy", "Amber"},
		Details: &domain.ProductDetails{
			Frame: "Acetate cat-eye frame",
			Lens:  "Polarized lenses, UV400 protection",
		},
	},
}

// seedCollections 定义首页分区与商品的映射
var seedCollections = map[string][]int64{
	CollectionNewArrivals:  {1, 2, 3, 4},
	CollectionEverydayWear: {5, 6, 7},
}
