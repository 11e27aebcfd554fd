package qrcode

import (
	"image/color"
	"sort"
)

// Platform describes a recognized social-media brand preset.
type Platform struct {
	Name    string
	IconURL string
	Brand   color.RGBA
}

var platforms = map[string]Platform{
	"github": {
		Name:    "github",
		IconURL: "https://github.githubassets.com/images/modules/logos_page/GitHub-Mark.png",
		Brand:   color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	},
	"youtube": {
		Name:    "youtube",
		IconURL: "https://www.youtube.com/img/desktop/yt_1200.png",
		Brand:   color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	},
	"facebook": {
		Name:    "facebook",
		IconURL: "https://static.xx.fbcdn.net/rsrc.php/y8/r/dF5SId3UHWd.svg",
		Brand:   color.RGBA{R: 0x18, G: 0x77, B: 0xf2, A: 0xff},
	},
	"twitter": {
		Name:    "twitter",
		IconURL: "https://abs.twimg.com/responsive-web/client-web/icon-ios.77d25eba.png",
		Brand:   color.RGBA{R: 0x1d, G: 0xa1, B: 0xf2, A: 0xff},
	},
	"instagram": {
		Name:    "instagram",
		IconURL: "https://static.cdninstagram.com/rsrc.php/v3/yT/r/5_ytvRKzJTc.png",
		Brand:   color.RGBA{R: 0xe4, G: 0x40, B: 0x5f, A: 0xff},
	},
	"linkedin": {
		Name:    "linkedin",
		IconURL: "https://static.licdn.com/aero-v1/sc/h/eahiplrwoq61f4dm712jqjqrb",
		Brand:   color.RGBA{R: 0x0a, G: 0x66, B: 0xc2, A: 0xff},
	},
	"whatsapp": {
		Name:    "whatsapp",
		IconURL: "https://static.whatsapp.net/rsrc.php/v3/yP/r/rYZqPCBaG70.png",
		Brand:   color.RGBA{R: 0x25, G: 0xd3, B: 0x66, A: 0xff},
	},
	"telegram": {
		Name:    "telegram",
		IconURL: "https://web.telegram.org/a/telegram-logo.1bcfc5e1.png",
		Brand:   color.RGBA{R: 0x00, G: 0x88, B: 0xcc, A: 0xff},
	},
	"discord": {
		Name:    "discord",
		IconURL: "https://assets-global.website-files.com/6257adef93867e50d84d30e2/62595384e89d1d54d704ece2_3437c10597c1526c3dbd98c737c2bcae.svg",
		Brand:   color.RGBA{R: 0x58, G: 0x65, B: 0xf2, A: 0xff},
	},
}

// LookupPlatform returns the preset registered under name.
func LookupPlatform(name string) (Platform, bool) {
	p, ok := platforms[name]
	return p, ok
}

// Platforms returns every preset sorted by name.
func Platforms() []Platform {
	list := make([]Platform, 0, len(platforms))
	for _, p := range platforms {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
