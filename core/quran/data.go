package quran

// surahTable lists every surah in canonical order. Names follow the
// quran.com transliteration; verse counts follow the Hafs reading.
var surahTable = []SurahMeta{
	{1, "Al-Fatihah", "الفاتحة", "The Opener", 7, Makkah},
	{2, "Al-Baqarah", "البقرة", "The Cow", 286, Madinah},
	{3, "Ali 'Imran", "آل عمران", "Family of Imran", 200, Madinah},
	{4, "An-Nisa", "النساء", "The Women", 176, Madinah},
	{5, "Al-Ma'idah", "المائدة", "The Table Spread", 120, Madinah},
	{6, "Al-An'am", "الأنعام", "The Cattle", 165, Makkah},
	{7, "Al-A'raf", "الأعراف", "The Heights", 206, Makkah},
	{8, "Al-Anfal", "الأنفال", "The Spoils of War", 75, Madinah},
	{9, "At-Tawbah", "التوبة", "The Repentance", 129, Madinah},
	{10, "Yunus", "يونس", "Jonah", 109, Makkah},
	{11, "Hud", "هود", "Hud", 123, Makkah},
	{12, "Yusuf", "يوسف", "Joseph", 111, Makkah},
	{13, "Ar-Ra'd", "الرعد", "The Thunder", 43, Makkah},
	{14, "Ibrahim", "ابراهيم", "Abraham", 52, Makkah},
	{15, "Al-Hijr", "الحجر", "The Rocky Tract", 99, Makkah},
	{16, "An-Nahl", "النحل", "The Bee", 128, Makkah},
	{17, "Al-Isra", "الإسراء", "The Night Journey", 111, Makkah},
	{18, "Al-Kahf", "الكهف", "The Cave", 110, Makkah},
	{19, "Maryam", "مريم", "Mary", 98, Makkah},
	{20, "Taha", "طه", "Ta-Ha", 135, Makkah},
	{21, "Al-Anbya", "الأنبياء", "The Prophets", 112, Makkah},
	{22, "Al-Hajj", "الحج", "The Pilgrimage", 78, Madinah},
	{23, "Al-Mu'minun", "المؤمنون", "The Believers", 118, Makkah},
	{24, "An-Nur", "النور", "The Light", 64, Madinah},
	{25, "Al-Furqan", "الفرقان", "The Criterion", 77, Makkah},
	{26, "Ash-Shu'ara", "الشعراء", "The Poets", 227, Makkah},
	{27, "An-Naml", "النمل", "The Ant", 93, Makkah},
	{28, "Al-Qasas", "القصص", "The Stories", 88, Makkah},
	{29, "Al-'Ankabut", "العنكبوت", "The Spider", 69, Makkah},
	{30, "Ar-Rum", "الروم", "The Romans", 60, Makkah},
	{31, "Luqman", "لقمان", "Luqman", 34, Makkah},
	{32, "As-Sajdah", "السجدة", "The Prostration", 30, Makkah},
	{33, "Al-Ahzab", "الأحزاب", "The Combined Forces", 73, Madinah},
	{34, "Saba", "سبإ", "Sheba", 54, Makkah},
	{35, "Fatir", "فاطر", "Originator", 45, Makkah},
	{36, "Ya-Sin", "يس", "Ya Sin", 83, Makkah},
	{37, "As-Saffat", "الصافات", "Those who set the Ranks", 182, Makkah},
	{38, "Sad", "ص", "The Letter Saad", 88, Makkah},
	{39, "Az-Zumar", "الزمر", "The Troops", 75, Makkah},
	{40, "Ghafir", "غافر", "The Forgiver", 85, Makkah},
	{41, "Fussilat", "فصلت", "Explained in Detail", 54, Makkah},
	{42, "Ash-Shuraa", "الشورى", "The Consultation", 53, Makkah},
	{43, "Az-Zukhruf", "الزخرف", "The Ornaments of Gold", 89, Makkah},
	{44, "Ad-Dukhan", "الدخان", "The Smoke", 59, Makkah},
	{45, "Al-Jathiyah", "الجاثية", "The Crouching", 37, Makkah},
	{46, "Al-Ahqaf", "الأحقاف", "The Wind-Curved Sandhills", 35, Makkah},
	{47, "Muhammad", "محمد", "Muhammad", 38, Madinah},
	{48, "Al-Fath", "الفتح", "The Victory", 29, Madinah},
	{49, "Al-Hujurat", "الحجرات", "The Rooms", 18, Madinah},
	{50, "Qaf", "ق", "The Letter Qaf", 45, Makkah},
	{51, "Adh-Dhariyat", "الذاريات", "The Winnowing Winds", 60, Makkah},
	{52, "At-Tur", "الطور", "The Mount", 49, Makkah},
	{53, "An-Najm", "النجم", "The Star", 62, Makkah},
	{54, "Al-Qamar", "القمر", "The Moon", 55, Makkah},
	{55, "Ar-Rahman", "الرحمن", "The Beneficent", 78, Makkah},
	{56, "Al-Waqi'ah", "الواقعة", "The Inevitable", 96, Makkah},
	{57, "Al-Hadid", "الحديد", "The Iron", 29, Madinah},
	{58, "Al-Mujadila", "المجادلة", "The Pleading Woman", 22, Madinah},
	{59, "Al-Hashr", "الحشر", "The Exile", 24, Madinah},
	{60, "Al-Mumtahanah", "الممتحنة", "She that is to be examined", 13, Madinah},
	{61, "As-Saf", "الصف", "The Ranks", 14, Madinah},
	{62, "Al-Jumu'ah", "الجمعة", "The Congregation, Friday", 11, Madinah},
	{63, "Al-Munafiqun", "المنافقون", "The Hypocrites", 11, Madinah},
	{64, "At-Taghabun", "التغابن", "The Mutual Disillusion", 18, Madinah},
	{65, "At-Talaq", "الطلاق", "The Divorce", 12, Madinah},
	{66, "At-Tahrim", "التحريم", "The Prohibition", 12, Madinah},
	{67, "Al-Mulk", "الملك", "The Sovereignty", 30, Makkah},
	{68, "Al-Qalam", "القلم", "The Pen", 52, Makkah},
	{69, "Al-Haqqah", "الحاقة", "The Reality", 52, Makkah},
	{70, "Al-Ma'arij", "المعارج", "The Ascending Stairways", 44, Makkah},
	{71, "Nuh", "نوح", "Noah", 28, Makkah},
	{72, "Al-Jinn", "الجن", "The Jinn", 28, Makkah},
	{73, "Al-Muzzammil", "المزمل", "The Enshrouded One", 20, Makkah},
	{74, "Al-Muddaththir", "المدثر", "The Cloaked One", 56, Makkah},
	{75, "Al-Qiyamah", "القيامة", "The Resurrection", 40, Makkah},
	{76, "Al-Insan", "الانسان", "The Man", 31, Makkah},
	{77, "Al-Mursalat", "المرسلات", "The Emissaries", 50, Makkah},
	{78, "An-Naba", "النبإ", "The Tidings", 40, Makkah},
	{79, "An-Nazi'at", "النازعات", "Those who drag forth", 46, Makkah},
	{80, "'Abasa", "عبس", "He Frowned", 42, Makkah},
	{81, "At-Takwir", "التكوير", "The Overthrowing", 29, Makkah},
	{82, "Al-Infitar", "الإنفطار", "The Cleaving", 19, Makkah},
	{83, "Al-Mutaffifin", "المطففين", "The Defrauding", 36, Makkah},
	{84, "Al-Inshiqaq", "الإنشقاق", "The Sundering", 25, Makkah},
	{85, "Al-Buruj", "البروج", "The Mansions of the Stars", 22, Makkah},
	{86, "At-Tariq", "الطارق", "The Nightcomer", 17, Makkah},
	{87, "Al-A'la", "الأعلى", "The Most High", 19, Makkah},
	{88, "Al-Ghashiyah", "الغاشية", "The Overwhelming", 26, Makkah},
	{89, "Al-Fajr", "الفجر", "The Dawn", 30, Makkah},
	{90, "Al-Balad", "البلد", "The City", 20, Makkah},
	{91, "Ash-Shams", "الشمس", "The Sun", 15, Makkah},
	{92, "Al-Layl", "الليل", "The Night", 21, Makkah},
	{93, "Ad-Duhaa", "الضحى", "The Morning Hours", 11, Makkah},
	{94, "Ash-Sharh", "الشرح", "The Relief", 8, Makkah},
	{95, "At-Tin", "التين", "The Fig", 8, Makkah},
	{96, "Al-'Alaq", "العلق", "The Clot", 19, Makkah},
	{97, "Al-Qadr", "القدر", "The Power", 5, Makkah},
	{98, "Al-Bayyinah", "البينة", "The Clear Proof", 8, Madinah},
	{99, "Az-Zalzalah", "الزلزلة", "The Earthquake", 8, Madinah},
	{100, "Al-'Adiyat", "العاديات", "The Courser", 11, Makkah},
	{101, "Al-Qari'ah", "القارعة", "The Calamity", 11, Makkah},
	{102, "At-Takathur", "التكاثر", "The Rivalry in World Increase", 8, Makkah},
	{103, "Al-'Asr", "العصر", "The Declining Day", 3, Makkah},
	{104, "Al-Humazah", "الهمزة", "The Traducer", 9, Makkah},
	{105, "Al-Fil", "الفيل", "The Elephant", 5, Makkah},
	{106, "Quraysh", "قريش", "Quraysh", 4, Makkah},
	{107, "Al-Ma'un", "الماعون", "The Small Kindnesses", 7, Makkah},
	{108, "Al-Kawthar", "الكوثر", "The Abundance", 3, Makkah},
	{109, "Al-Kafirun", "الكافرون", "The Disbelievers", 6, Makkah},
	{110, "An-Nasr", "النصر", "The Divine Support", 3, Madinah},
	{111, "Al-Masad", "المسد", "The Palm Fiber", 5, Makkah},
	{112, "Al-Ikhlas", "الإخلاص", "The Sincerity", 4, Makkah},
	{113, "Al-Falaq", "الفلق", "The Daybreak", 5, Makkah},
	{114, "An-Nas", "الناس", "Mankind", 6, Makkah},
}

// pageStarts holds the first verse of every page of the Madani Mushaf,
// as {surah, verse}. Page n starts at pageStarts[n-1].
var pageStarts = [][2]int{
	{1, 1}, {2, 1}, {2, 6}, {2, 17}, {2, 25}, // 1
	{2, 30}, {2, 38}, {2, 49}, {2, 58}, {2, 62}, // 6
	{2, 70}, {2, 77}, {2, 84}, {2, 89}, {2, 94}, // 11
	{2, 102}, {2, 106}, {2, 113}, {2, 120}, {2, 127}, // 16
	{2, 135}, {2, 142}, {2, 146}, {2, 154}, {2, 164}, // 21
	{2, 170}, {2, 177}, {2, 182}, {2, 187}, {2, 191}, // 26
	{2, 197}, {2, 203}, {2, 211}, {2, 216}, {2, 220}, // 31
	{2, 225}, {2, 231}, {2, 234}, {2, 238}, {2, 246}, // 36
	{2, 249}, {2, 253}, {2, 257}, {2, 260}, {2, 265}, // 41
	{2, 270}, {2, 275}, {2, 282}, {2, 283}, {3, 1}, // 46
	{3, 10}, {3, 16}, {3, 23}, {3, 30}, {3, 38}, // 51
	{3, 46}, {3, 53}, {3, 62}, {3, 71}, {3, 78}, // 56
	{3, 84}, {3, 92}, {3, 101}, {3, 109}, {3, 116}, // 61
	{3, 122}, {3, 133}, {3, 141}, {3, 149}, {3, 154}, // 66
	{3, 158}, {3, 166}, {3, 174}, {3, 181}, {3, 187}, // 71
	{3, 195}, {4, 1}, {4, 7}, {4, 12}, {4, 15}, // 76
	{4, 20}, {4, 24}, {4, 27}, {4, 34}, {4, 38}, // 81
	{4, 45}, {4, 52}, {4, 60}, {4, 66}, {4, 75}, // 86
	{4, 80}, {4, 87}, {4, 92}, {4, 95}, {4, 102}, // 91
	{4, 106}, {4, 114}, {4, 122}, {4, 128}, {4, 135}, // 96
	{4, 141}, {4, 148}, {4, 155}, {4, 163}, {4, 171}, // 101
	{4, 176}, {5, 3}, {5, 6}, {5, 10}, {5, 14}, // 106
	{5, 18}, {5, 24}, {5, 32}, {5, 37}, {5, 42}, // 111
	{5, 46}, {5, 51}, {5, 58}, {5, 65}, {5, 71}, // 116
	{5, 77}, {5, 83}, {5, 90}, {5, 96}, {5, 104}, // 121
	{5, 109}, {5, 114}, {6, 1}, {6, 9}, {6, 19}, // 126
	{6, 28}, {6, 36}, {6, 45}, {6, 53}, {6, 60}, // 131
	{6, 69}, {6, 74}, {6, 82}, {6, 91}, {6, 95}, // 136
	{6, 102}, {6, 111}, {6, 119}, {6, 125}, {6, 132}, // 141
	{6, 138}, {6, 143}, {6, 147}, {6, 152}, {6, 158}, // 146
	{7, 1}, {7, 12}, {7, 23}, {7, 31}, {7, 38}, // 151
	{7, 44}, {7, 52}, {7, 58}, {7, 68}, {7, 74}, // 156
	{7, 82}, {7, 88}, {7, 96}, {7, 105}, {7, 121}, // 161
	{7, 131}, {7, 138}, {7, 144}, {7, 150}, {7, 156}, // 166
	{7, 160}, {7, 164}, {7, 171}, {7, 179}, {7, 188}, // 171
	{7, 196}, {8, 1}, {8, 9}, {8, 17}, {8, 26}, // 176
	{8, 34}, {8, 41}, {8, 46}, {8, 53}, {8, 62}, // 181
	{8, 70}, {9, 1}, {9, 7}, {9, 14}, {9, 21}, // 186
	{9, 27}, {9, 32}, {9, 37}, {9, 41}, {9, 48}, // 191
	{9, 55}, {9, 62}, {9, 69}, {9, 73}, {9, 80}, // 196
	{9, 87}, {9, 94}, {9, 100}, {9, 107}, {9, 112}, // 201
	{9, 118}, {9, 123}, {10, 1}, {10, 7}, {10, 15}, // 206
	{10, 21}, {10, 26}, {10, 34}, {10, 43}, {10, 54}, // 211
	{10, 62}, {10, 71}, {10, 79}, {10, 89}, {10, 98}, // 216
	{10, 107}, {11, 6}, {11, 13}, {11, 20}, {11, 29}, // 221
	{11, 38}, {11, 46}, {11, 54}, {11, 63}, {11, 72}, // 226
	{11, 82}, {11, 89}, {11, 98}, {11, 109}, {11, 118}, // 231
	{12, 5}, {12, 15}, {12, 23}, {12, 31}, {12, 38}, // 236
	{12, 44}, {12, 53}, {12, 64}, {12, 70}, {12, 79}, // 241
	{12, 87}, {12, 96}, {12, 104}, {13, 1}, {13, 6}, // 246
	{13, 14}, {13, 19}, {13, 29}, {13, 35}, {13, 43}, // 251
	{14, 6}, {14, 11}, {14, 19}, {14, 25}, {14, 34}, // 256
	{14, 43}, {15, 1}, {15, 16}, {15, 32}, {15, 52}, // 261
	{15, 71}, {15, 91}, {16, 7}, {16, 15}, {16, 27}, // 266
	{16, 35}, {16, 43}, {16, 55}, {16, 65}, {16, 73}, // 271
	{16, 80}, {16, 88}, {16, 94}, {16, 103}, {16, 111}, // 276
	{16, 119}, {17, 1}, {17, 8}, {17, 18}, {17, 28}, // 281
	{17, 39}, {17, 50}, {17, 59}, {17, 67}, {17, 76}, // 286
	{17, 87}, {17, 97}, {17, 105}, {18, 5}, {18, 16}, // 291
	{18, 21}, {18, 28}, {18, 35}, {18, 46}, {18, 54}, // 296
	{18, 62}, {18, 75}, {18, 84}, {18, 98}, {19, 1}, // 301
	{19, 12}, {19, 26}, {19, 39}, {19, 52}, {19, 65}, // 306
	{19, 77}, {19, 96}, {20, 13}, {20, 38}, {20, 52}, // 311
	{20, 65}, {20, 77}, {20, 88}, {20, 99}, {20, 114}, // 316
	{20, 126}, {21, 1}, {21, 11}, {21, 25}, {21, 36}, // 321
	{21, 45}, {21, 58}, {21, 73}, {21, 82}, {21, 91}, // 326
	{21, 102}, {22, 1}, {22, 6}, {22, 16}, {22, 24}, // 331
	{22, 31}, {22, 39}, {22, 47}, {22, 56}, {22, 65}, // 336
	{22, 73}, {23, 1}, {23, 18}, {23, 28}, {23, 43}, // 341
	{23, 60}, {23, 75}, {23, 90}, {23, 105}, {24, 1}, // 346
	{24, 11}, {24, 21}, {24, 28}, {24, 32}, {24, 37}, // 351
	{24, 44}, {24, 54}, {24, 59}, {24, 62}, {25, 3}, // 356
	{25, 12}, {25, 21}, {25, 33}, {25, 44}, {25, 56}, // 361
	{25, 68}, {26, 1}, {26, 20}, {26, 40}, {26, 61}, // 366
	{26, 84}, {26, 112}, {26, 137}, {26, 160}, {26, 184}, // 371
	{26, 207}, {27, 1}, {27, 14}, {27, 23}, {27, 36}, // 376
	{27, 45}, {27, 56}, {27, 64}, {27, 77}, {27, 89}, // 381
	{28, 6}, {28, 14}, {28, 22}, {28, 29}, {28, 36}, // 386
	{28, 44}, {28, 51}, {28, 60}, {28, 71}, {28, 78}, // 391
	{28, 85}, {29, 7}, {29, 15}, {29, 24}, {29, 31}, // 396
	{29, 39}, {29, 46}, {29, 53}, {29, 64}, {30, 6}, // 401
	{30, 16}, {30, 25}, {30, 33}, {30, 42}, {30, 51}, // 406
	{31, 1}, {31, 12}, {31, 20}, {31, 29}, {32, 1}, // 411
	{32, 12}, {32, 21}, {33, 1}, {33, 7}, {33, 16}, // 416
	{33, 23}, {33, 31}, {33, 36}, {33, 44}, {33, 51}, // 421
	{33, 55}, {33, 63}, {34, 1}, {34, 8}, {34, 15}, // 426
	{34, 23}, {34, 32}, {34, 40}, {34, 49}, {35, 4}, // 431
	{35, 12}, {35, 19}, {35, 31}, {35, 39}, {35, 45}, // 436
	{36, 13}, {36, 28}, {36, 41}, {36, 55}, {36, 71}, // 441
	{37, 1}, {37, 25}, {37, 52}, {37, 77}, {37, 103}, // 446
	{37, 127}, {37, 154}, {38, 1}, {38, 17}, {38, 27}, // 451
	{38, 43}, {38, 62}, {38, 84}, {39, 6}, {39, 11}, // 456
	{39, 22}, {39, 32}, {39, 41}, {39, 48}, {39, 57}, // 461
	{39, 68}, {39, 75}, {40, 8}, {40, 17}, {40, 26}, // 466
	{40, 34}, {40, 41}, {40, 50}, {40, 59}, {40, 67}, // 471
	{40, 78}, {41, 1}, {41, 12}, {41, 21}, {41, 30}, // 476
	{41, 39}, {41, 47}, {42, 1}, {42, 11}, {42, 16}, // 481
	{42, 23}, {42, 32}, {42, 45}, {42, 52}, {43, 11}, // 486
	{43, 23}, {43, 34}, {43, 48}, {43, 61}, {43, 74}, // 491
	{44, 1}, {44, 19}, {44, 40}, {45, 1}, {45, 14}, // 496
	{45, 23}, {45, 33}, {46, 6}, {46, 15}, {46, 21}, // 501
	{46, 29}, {47, 1}, {47, 12}, {47, 20}, {47, 30}, // 506
	{48, 1}, {48, 10}, {48, 16}, {48, 24}, {48, 29}, // 511
	{49, 5}, {49, 12}, {50, 1}, {50, 16}, {50, 36}, // 516
	{51, 7}, {51, 31}, {51, 52}, {52, 15}, {52, 32}, // 521
	{53, 1}, {53, 27}, {53, 45}, {54, 7}, {54, 28}, // 526
	{54, 50}, {55, 17}, {55, 41}, {55, 68}, {56, 17}, // 531
	{56, 51}, {56, 77}, {57, 4}, {57, 12}, {57, 19}, // 536
	{57, 25}, {58, 1}, {58, 7}, {58, 12}, {58, 22}, // 541
	{59, 4}, {59, 10}, {59, 17}, {60, 1}, {60, 6}, // 546
	{60, 12}, {61, 6}, {62, 1}, {62, 9}, {63, 5}, // 551
	{64, 1}, {64, 10}, {65, 1}, {65, 6}, {66, 1}, // 556
	{66, 8}, {67, 1}, {67, 13}, {67, 27}, {68, 16}, // 561
	{68, 43}, {69, 9}, {69, 35}, {70, 11}, {70, 40}, // 566
	{71, 11}, {72, 1}, {72, 14}, {73, 1}, {73, 20}, // 571
	{74, 18}, {74, 48}, {75, 20}, {76, 6}, {76, 26}, // 576
	{77, 20}, {78, 1}, {78, 31}, {79, 16}, {80, 1}, // 581
	{81, 1}, {82, 1}, {83, 7}, {83, 35}, {85, 1}, // 586
	{86, 1}, {87, 16}, {89, 1}, {89, 24}, {91, 1}, // 591
	{92, 15}, {95, 1}, {97, 1}, {98, 8}, {100, 10}, // 596
	{103, 1}, {106, 1}, {109, 1}, {112, 1}, // 601
}

// juzStarts holds the first verse of every juz, as {surah, verse}.
var juzStarts = [][2]int{
	{1, 1}, {2, 142}, {2, 253}, {3, 93}, {4, 24}, // 1
	{4, 148}, {5, 82}, {6, 111}, {7, 88}, {8, 41}, // 6
	{9, 93}, {11, 6}, {12, 53}, {15, 1}, {17, 1}, // 11
	{18, 75}, {21, 1}, {23, 1}, {25, 21}, {27, 56}, // 16
	{29, 46}, {33, 31}, {36, 28}, {39, 32}, {41, 47}, // 21
	{46, 1}, {51, 31}, {58, 1}, {67, 1}, {78, 1}, // 26
}

// sajdahVerses lists the verses that carry a prostration mark.
var sajdahVerses = [][2]int{
	{7, 206}, {13, 15}, {16, 50}, {17, 109}, {19, 58},
	{22, 18}, {22, 77}, {25, 60}, {27, 26}, {32, 15},
	{38, 24}, {41, 38}, {53, 62}, {84, 21}, {96, 19},
}
