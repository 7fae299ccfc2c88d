package domain

import "context"

// ServiceIcon names one of the icons the services page knows how to draw.
type ServiceIcon string

const (
	IconWifi     ServiceIcon = "Wifi"
	IconCoffee   ServiceIcon = "Coffee"
	IconUtensils ServiceIcon = "Utensils"
	IconCar      ServiceIcon = "Car"
	IconMountain ServiceIcon = "Mountain"
	IconFlame    ServiceIcon = "Flame"
	IconMap      ServiceIcon = "Map"
	IconHelp     ServiceIcon = "HelpCircle"
)

var serviceIcons = map[ServiceIcon]bool{
	IconWifi:     true,
	IconCoffee:   true,
	IconUtensils: true,
	IconCar:      true,
	IconMountain: true,
	IconFlame:    true,
	IconMap:      true,
	IconHelp:     true,
}

// ParseServiceIcon maps a content key to a known icon; unknown keys get IconHelp.
func ParseServiceIcon(key string) ServiceIcon {
	icon := ServiceIcon(key)
	if serviceIcons[icon] {
		return icon
	}
	return IconHelp
}

// GalleryCategoryAll is the filter value that shows every image.
const GalleryCategoryAll = "TODAS"

// GalleryCategories are the gallery filters in display order.
var GalleryCategories = []string{GalleryCategoryAll, "Habitaciones", "Entorno", "Interiores"}

type Room struct {
	Slug        string   `mapstructure:"slug" validate:"required"`
	Name        string   `mapstructure:"name" validate:"required"`
	Description string   `mapstructure:"description"`
	Capacity    int      `mapstructure:"capacity" validate:"min=0"`
	Amenities   []string `mapstructure:"amenities"`
	Images      []string `mapstructure:"images"`
}

type Service struct {
	Icon        ServiceIcon `mapstructure:"icon"`
	Title       string      `mapstructure:"title" validate:"required"`
	Description string      `mapstructure:"description"`
}

type GalleryImage struct {
	Image    string `mapstructure:"image" validate:"required"`
	Alt      string `mapstructure:"alt"`
	Category string `mapstructure:"category"`
}

type ContactInfo struct {
	Phone    string `mapstructure:"phone"`
	Email    string `mapstructure:"email" validate:"omitempty,email"`
	Address  string `mapstructure:"address"`
	WhatsApp string `mapstructure:"whatsapp"`
	MapURL   string `mapstructure:"map_url" validate:"omitempty,url"`
}

// Site is the editable content behind the marketing pages.
type Site struct {
	Name        string         `mapstructure:"name" validate:"required"`
	Tagline     string         `mapstructure:"tagline"`
	Description string         `mapstructure:"description"`
	Logo        string         `mapstructure:"logo"`
	HeroImages  []string       `mapstructure:"hero_images"`
	Rooms       []Room         `mapstructure:"rooms" validate:"dive"`
	Services    []Service      `mapstructure:"services" validate:"dive"`
	Gallery     []GalleryImage `mapstructure:"gallery" validate:"dive"`
	Contact     ContactInfo    `mapstructure:"contact"`
}

// GalleryByCategory filters the gallery; GalleryCategoryAll or "" returns every image.
func (s *Site) GalleryByCategory(category string) []GalleryImage {
	if category == "" || category == GalleryCategoryAll {
		return s.Gallery
	}
	var images []GalleryImage
	for _, img := range s.Gallery {
		if img.Category == category {
			images = append(images, img)
		}
	}
	return images
}

// Room looks a room up by slug.
func (s *Site) Room(slug string) (*Room, bool) {
	for i := range s.Rooms {
		if s.Rooms[i].Slug == slug {
			return &s.Rooms[i], true
		}
	}
	return nil, false
}

type SiteRepository interface {
	Load(ctx context.Context) (*Site, error)
}
