// Package seed populates the catalog with sample shoe data. It is meant for
// demo and development databases, not for production request paths.
package seed

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/solestore/internal/models"
)

type categoryData struct {
	Name        string
	Description string
}

type brandData struct {
	Name        string
	Description string
	ImageURL    string
}

type productData struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Brand       string
	Sizes       []int64
	Colors      []string
	ImageURL    string
}

var categoriesData = []categoryData{
	{"Running", "Performance running shoes for all terrains"},
	{"Basketball", "High-top shoes for maximum court performance"},
	{"Casual", "Everyday sneakers for comfort and style"},
	{"Training", "Versatile shoes for gym and cross-training"},
	{"Skateboarding", "Durable shoes with excellent board feel"},
}

var brandsData = []brandData{
	{"Nike", "Just Do It", "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a6/Logo_NIKE.svg/400px-Logo_NIKE.svg.png"},
	{"Adidas", "Impossible Is Nothing", "https://upload.wikimedia.org/wikipedia/commons/thumb/2/20/Adidas_Logo.svg/400px-Adidas_Logo.svg.png"},
	{"Puma", "Forever Faster", "https://upload.wikimedia.org/wikipedia/commons/thumb/8/88/Puma_Logo.svg/400px-Puma_Logo.svg.png"},
	{"Reebok", "Be More Human", "https://upload.wikimedia.org/wikipedia/commons/thumb/5/5f/Reebok_Logo.svg/400px-Reebok_Logo.svg.png"},
	{"New Balance", "Fearlessly Independent Since 1906", "https://upload.wikimedia.org/wikipedia/commons/thumb/e/ea/New_Balance_logo.svg/400px-New_Balance_logo.svg.png"},
}

var productsData = []productData{
	{
		Name:        "Nike Air Max 270",
		Description: "The Nike Air Max 270 is Nike's first lifestyle Air Max, bringing you style, comfort and big attitude.",
		Price:       150.00,
		Category:    "Casual",
		Brand:       "Nike",
		Sizes:       []int64{38, 39, 40, 41, 42, 43, 44, 45},
		Colors:      []string{"Black/White", "Red/Black"},
		ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Adidas Ultraboost 22",
		Description: "A little extra push. These running shoes give you comfort and responsiveness at every pace and distance.",
		Price:       190.00,
		Category:    "Running",
		Brand:       "Adidas",
		Sizes:       []int64{37, 38, 39, 40, 41, 42, 43},
		Colors:      []string{"Grey", "White"},
		ImageURL:    "https://images.unsplash.com/photo-1587563871167-1ee9c731aefb?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Puma RS-X3",
		Description: "X marks extreme. RS-X takes the signature RS design and dials it up to the third power.",
		Price:       110.00,
		Category:    "Casual",
		Brand:       "Puma",
		Sizes:       []int64{39, 40, 41, 42, 43, 44},
		Colors:      []string{"White/Blue", "White/Grey"},
		ImageURL:    "https://images.unsplash.com/photo-1539185441755-769473a23570?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Nike Giannis Immortality",
		Description: "Smooth performance for the multidimensional player. The Giannis Immortality is a game shoe for intensity.",
		Price:       85.00,
		Category:    "Basketball",
		Brand:       "Nike",
		Sizes:       []int64{40, 41, 42, 43, 44, 45},
		Colors:      []string{"Black/Green"},
		ImageURL:    "https://images.unsplash.com/photo-1605348532760-6753d2c43329?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "New Balance 574",
		Description: "The most New Balance shoe ever. Built to be a reliable shoe that could do a lot of things well.",
		Price:       85.00,
		Category:    "Casual",
		Brand:       "New Balance",
		Sizes:       []int64{38, 39, 40, 41, 42},
		Colors:      []string{"Navy", "Grey"},
		ImageURL:    "https://images.unsplash.com/photo-1534653218114-c139a047053e?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Reebok Nano X2",
		Description: "Your favorite training shoe is back. The Nano X2 is built for all the ways you move.",
		Price:       135.00,
		Category:    "Training",
		Brand:       "Reebok",
		Sizes:       []int64{38, 39, 40, 41, 42},
		Colors:      []string{"Black/Gum"},
		ImageURL:    "https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?auto=format&fit=crop&q=80&w=800",
	},
}

var reviewUsers = []string{"Alice", "Bob", "Charlie", "David", "Eva"}

var reviewComments = []string{
	"Great shoes, very comfortable!",
	"Perfect fit and amazing style.",
	"A bit tight at first but broke in nicely.",
	"Excellent quality for the price.",
	"Not what I expected, but still good.",
}

// Run seeds categories, brands and products. It is idempotent per entity:
// rows are matched by name, and images and reviews are only added where none
// exist yet, so a run that failed on a download can be repeated safely.
// A failed download is logged and skipped, never fatal.
func Run(db *gorm.DB, mediaDir string) error {
	log.Println("Populating data with public images...")

	categories := make(map[string]*models.Category, len(categoriesData))
	for _, data := range categoriesData {
		category := models.Category{Name: data.Name, Description: data.Description}
		if err := db.Where("name = ?", data.Name).
			FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", data.Name, err)
		}
		categories[data.Name] = &category
	}

	brands := make(map[string]*models.Brand, len(brandsData))
	for _, data := range brandsData {
		brand := models.Brand{Name: data.Name, Description: data.Description}
		if err := db.Where("name = ?", data.Name).
			FirstOrCreate(&brand).Error; err != nil {
			return fmt.Errorf("seed brand %q: %w", data.Name, err)
		}

		if brand.Logo == "" {
			log.Printf("Downloading logo for %s...", data.Name)
			fileName := slug.Make(data.Name) + "_logo.png"
			path, err := downloadImage(data.ImageURL, filepath.Join(mediaDir, "brands"), fileName)
			if err != nil {
				log.Printf("Error downloading logo for %s: %v", data.Name, err)
			} else {
				brand.Logo = path
				if err := db.Model(&brand).Update("logo", path).Error; err != nil {
					return fmt.Errorf("seed brand logo %q: %w", data.Name, err)
				}
			}
		}
		brands[data.Name] = &brand
	}

	for _, data := range productsData {
		product := models.Product{
			Name:        data.Name,
			Description: data.Description,
			Price:       data.Price,
			Stock:       rand.Intn(41) + 10,
			Available:   true,
			Sizes:       pq.Int64Array(data.Sizes),
			Colors:      pq.StringArray(data.Colors),
			CategoryID:  &categories[data.Category].ID,
			BrandID:     &brands[data.Brand].ID,
		}
		if err := db.Where("name = ?", data.Name).
			FirstOrCreate(&product).Error; err != nil {
			return fmt.Errorf("seed product %q: %w", data.Name, err)
		}

		var imageCount int64
		if err := db.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).Count(&imageCount).Error; err != nil {
			return err
		}
		if imageCount == 0 {
			log.Printf("Downloading image for %s...", data.Name)
			fileName := slug.Make(data.Name) + ".jpg"
			path, err := downloadImage(data.ImageURL, filepath.Join(mediaDir, "products"), fileName)
			if err != nil {
				log.Printf("Error downloading image for %s: %v", data.Name, err)
			} else {
				image := models.ProductImage{
					ProductID: product.ID,
					Image:     path,
					IsPrimary: true,
				}
				if err := db.Create(&image).Error; err != nil {
					return fmt.Errorf("seed product image %q: %w", data.Name, err)
				}
				log.Printf("Successfully added image for %s", data.Name)
			}
		}

		var reviewCount int64
		if err := db.Model(&models.Review{}).
			Where("product_id = ?", product.ID).Count(&reviewCount).Error; err != nil {
			return err
		}
		if reviewCount == 0 {
			for i := 0; i < rand.Intn(3)+2; i++ {
				review := models.Review{
					ProductID: product.ID,
					UserName:  reviewUsers[rand.Intn(len(reviewUsers))],
					Rating:    rand.Intn(2) + 4,
					Comment:   reviewComments[rand.Intn(len(reviewComments))],
				}
				if err := db.Create(&review).Error; err != nil {
					return fmt.Errorf("seed review for %q: %w", data.Name, err)
				}
			}
		}
	}

	log.Println("Successfully populated database with products and images")
	return nil
}

// downloadImage fetches a remote image and stores it under destDir, returning
// the stored path relative to the media root's parent.
func downloadImage(url, destDir, fileName string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(destDir, fileName)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}

	return path, nil
}
