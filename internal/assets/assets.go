package assets

import "golang.org/x/image/font/gofont/goregular"

// FontTTF is the font used for on-screen status text and preview captions.
var FontTTF = goregular.TTF
