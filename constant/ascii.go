package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
       _     _
__   _| |__ | |___
\ \ / / '_ \| / __|
 \ V /| | | | \__ \
  \_/ |_| |_|_|___/`
